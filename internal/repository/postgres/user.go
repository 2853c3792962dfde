package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/auth-service/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db     DBTX
	hasher model.PasswordHasher
}

func NewUserRepository(db DBTX, hasher model.PasswordHasher) *UserRepository {
	return &UserRepository{
		db:     db,
		hasher: hasher,
	}
}

func (r *UserRepository) AddUser(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (email, password_hash, requires_2fa)
			  VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, user.Email.String(), string(user.Password), user.RequiresTwoFA)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to add user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, email model.Email) (model.User, error) {
	query := `SELECT password_hash, requires_2fa FROM users WHERE email = $1`

	var (
		stored        string
		requiresTwoFA bool
	)
	err := r.db.QueryRow(ctx, query, email.String()).Scan(&stored, &requiresTwoFA)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	hashed, err := r.hasher.Parse(stored)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse stored password hash: %w", err)
	}

	return model.NewUser(email, hashed, requiresTwoFA), nil
}

func (r *UserRepository) ValidateUser(ctx context.Context, email model.Email, rawPassword string) error {
	user, err := r.GetUser(ctx, email)
	if err != nil {
		return err
	}

	return model.VerifyCredentials(ctx, r.hasher, user.Password, rawPassword)
}

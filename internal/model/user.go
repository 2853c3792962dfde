package model

import (
	"context"
	"errors"
	"fmt"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	// AddUser returns ErrUserAlreadyExists when the email is taken.
	AddUser(ctx context.Context, user User) error
	// GetUser returns ErrNotFound when no user has the email.
	GetUser(ctx context.Context, email Email) (User, error)
	// ValidateUser returns ErrNotFound or ErrInvalidCredentials on failure.
	ValidateUser(ctx context.Context, email Email, rawPassword string) error
}

// User represents a registered user.
type User struct {
	Email         Email
	Password      HashedPassword
	RequiresTwoFA bool
}

// NewUser creates a User.
func NewUser(email Email, password HashedPassword, requiresTwoFA bool) User {
	return User{
		Email:         email,
		Password:      password,
		RequiresTwoFA: requiresTwoFA,
	}
}

// VerifyCredentials checks rawPassword against hashed for UserStore
// implementations, mapping a mismatch to ErrInvalidCredentials.
func VerifyCredentials(ctx context.Context, hasher PasswordHasher, hashed HashedPassword, rawPassword string) error {
	err := hasher.Verify(ctx, hashed, rawPassword)
	if errors.Is(err, ErrPasswordMismatch) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	return nil
}

//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/auth-service/database"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/password"
	repo "github.com/dtroode/auth-service/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "auth_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/auth_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	hasher := password.NewHasher(model.NewKDFParams(1, 1024, 1), 2)
	users := repo.NewUserRepository(conn, hasher)

	email, err := model.ParseEmail("user@example.com")
	require.NoError(t, err)
	pw, err := model.ParsePassword("password123")
	require.NoError(t, err)
	hashed, err := hasher.Hash(ctx, pw)
	require.NoError(t, err)

	require.NoError(t, users.AddUser(ctx, model.NewUser(email, hashed, true)))
	assert.ErrorIs(t, users.AddUser(ctx, model.NewUser(email, hashed, false)), model.ErrUserAlreadyExists)

	got, err := users.GetUser(ctx, email)
	require.NoError(t, err)
	assert.True(t, got.RequiresTwoFA)
	assert.Equal(t, hashed, got.Password)

	require.NoError(t, users.ValidateUser(ctx, email, "password123"))
	assert.ErrorIs(t, users.ValidateUser(ctx, email, "password124"), model.ErrInvalidCredentials)

	other, err := model.ParseEmail("nobody@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, users.ValidateUser(ctx, other, "password123"), model.ErrNotFound)

	require.NoError(t, database.Migrate(ctx, dsn), "migrations are idempotent")
}

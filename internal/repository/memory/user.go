// Package memory provides process-local store implementations for tests and development.
// Every store guards its map with a mutex held only for the map access itself.
package memory

import (
	"context"
	"sync"

	"github.com/dtroode/auth-service/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore is a thread-safe in-memory UserStore keyed by email.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]model.User
	hasher model.PasswordHasher
}

// NewUserStore creates an empty in-memory user store. hasher verifies
// candidate passwords in ValidateUser.
func NewUserStore(hasher model.PasswordHasher) *UserStore {
	return &UserStore{
		users:  make(map[string]model.User),
		hasher: hasher,
	}
}

func (s *UserStore) AddUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := user.Email.String()
	if _, ok := s.users[key]; ok {
		return model.ErrUserAlreadyExists
	}
	s.users[key] = user
	return nil
}

func (s *UserStore) GetUser(_ context.Context, email model.Email) (model.User, error) {
	s.mu.RLock()
	user, ok := s.users[email.String()]
	s.mu.RUnlock()
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

// ValidateUser copies the user out of the map before verifying, so the lock
// is never held while hashing.
func (s *UserStore) ValidateUser(ctx context.Context, email model.Email, rawPassword string) error {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return err
	}
	return model.VerifyCredentials(ctx, s.hasher, user.Password, rawPassword)
}

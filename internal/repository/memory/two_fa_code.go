package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dtroode/auth-service/internal/model"
)

var _ model.TwoFACodeStore = (*TwoFACodeStore)(nil)

type twoFAEntry struct {
	loginAttemptID model.LoginAttemptID
	code           model.TwoFACode
	expiresAt      time.Time
}

// TwoFACodeStore is a thread-safe in-memory TwoFACodeStore keyed by email.
type TwoFACodeStore struct {
	mu    sync.Mutex
	codes map[string]twoFAEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewTwoFACodeStore creates an in-memory 2FA challenge store whose records expire after ttl.
func NewTwoFACodeStore(ttl time.Duration) *TwoFACodeStore {
	return &TwoFACodeStore{
		codes: make(map[string]twoFAEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *TwoFACodeStore) AddCode(_ context.Context, email model.Email, loginAttemptID model.LoginAttemptID, code model.TwoFACode) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[email.String()] = twoFAEntry{
		loginAttemptID: loginAttemptID,
		code:           code,
		expiresAt:      now.Add(s.ttl),
	}
	return nil
}

func (s *TwoFACodeStore) GetCode(_ context.Context, email model.Email) (model.LoginAttemptID, model.TwoFACode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(email.String())
	if !ok {
		return model.LoginAttemptID{}, model.TwoFACode{}, model.ErrNotFound
	}
	return entry.loginAttemptID, entry.code, nil
}

// RemoveCode deletes the challenge. Of two concurrent callers only one
// observes success.
func (s *TwoFACodeStore) RemoveCode(_ context.Context, email model.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liveLocked(email.String()); !ok {
		return model.ErrNotFound
	}
	delete(s.codes, email.String())
	return nil
}

func (s *TwoFACodeStore) ConsumeCode(_ context.Context, email model.Email, loginAttemptID model.LoginAttemptID, code model.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(email.String())
	if !ok {
		return model.ErrNotFound
	}
	idMatch := subtle.ConstantTimeCompare([]byte(loginAttemptID.String()), []byte(entry.loginAttemptID.String()))
	codeMatch := subtle.ConstantTimeCompare([]byte(code.String()), []byte(entry.code.String()))
	if idMatch&codeMatch != 1 {
		return model.ErrNotFound
	}
	delete(s.codes, email.String())
	return nil
}

// liveLocked returns the entry for key if it has not expired, evicting it otherwise.
func (s *TwoFACodeStore) liveLocked(key string) (twoFAEntry, bool) {
	entry, ok := s.codes[key]
	if !ok {
		return twoFAEntry{}, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.codes, key)
		return twoFAEntry{}, false
	}
	return entry, true
}

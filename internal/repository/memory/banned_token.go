package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/auth-service/internal/model"
)

var _ model.BannedTokenStore = (*BannedTokenStore)(nil)

// defaultPurgeEvery is how many writes pass between sweeps of expired records.
const defaultPurgeEvery = 256

// BannedTokenStore is a thread-safe in-memory BannedTokenStore. Each record
// lives for ttl, matching the token lifetime, and is dropped lazily.
type BannedTokenStore struct {
	mu         sync.RWMutex
	tokens     map[string]time.Time
	ttl        time.Duration
	now        func() time.Time
	writes     int
	purgeEvery int
}

// NewBannedTokenStore creates an in-memory revocation store.
func NewBannedTokenStore(ttl time.Duration) *BannedTokenStore {
	return &BannedTokenStore{
		tokens:     make(map[string]time.Time),
		ttl:        ttl,
		now:        time.Now,
		purgeEvery: defaultPurgeEvery,
	}
}

// StoreToken records token until ttl elapses. Storing again refreshes the expiry.
func (s *BannedTokenStore) StoreToken(_ context.Context, token string) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = now.Add(s.ttl)
	s.writes++
	if s.writes >= s.purgeEvery {
		s.writes = 0
		s.purgeLocked(now)
	}
	return nil
}

func (s *BannedTokenStore) ContainsToken(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.tokens[token]
	s.mu.RUnlock()

	return ok && s.now().Before(expiresAt), nil
}

// purgeLocked drops expired records. s.mu must be held for writing.
func (s *BannedTokenStore) purgeLocked(now time.Time) {
	for token, expiresAt := range s.tokens {
		if !now.Before(expiresAt) {
			delete(s.tokens, token)
		}
	}
}

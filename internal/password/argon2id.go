// Package password implements salted argon2id password hashing.
package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/auth-service/internal/model"
)

const (
	saltLen = 16
	keyLen  = 32
)

var _ model.PasswordHasher = (*Hasher)(nil)

// Hasher derives and verifies argon2id hashes encoded in PHC string format:
// $argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<hash>.
//
// Work runs on its own goroutine and at most maxConcurrent computations
// are in flight, since each one allocates MemKiB of memory.
type Hasher struct {
	params model.KDFParams
	sem    *semaphore.Weighted
}

// NewHasher creates a Hasher with the given work factors.
func NewHasher(params model.KDFParams, maxConcurrent int64) *Hasher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Hasher{
		params: params,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Hash derives a hash with a fresh random salt.
func (h *Hasher) Hash(ctx context.Context, password model.Password) (model.HashedPassword, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	var key []byte
	err := h.offload(ctx, func() {
		key = argon2.IDKey([]byte(password.String()), salt, h.params.Time, h.params.MemKiB, h.params.Par, keyLen)
	})
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return model.HashedPassword(encode(h.params, salt, key)), nil
}

// Parse accepts only strings produced by Hash.
func (h *Hasher) Parse(stored string) (model.HashedPassword, error) {
	if _, err := decode(stored); err != nil {
		return "", err
	}
	return model.HashedPassword(stored), nil
}

// Verify recomputes the hash of candidate with the stored parameters and salt
// and compares it in constant time.
func (h *Hasher) Verify(ctx context.Context, hashed model.HashedPassword, candidate string) error {
	d, err := decode(string(hashed))
	if err != nil {
		return err
	}

	var computed []byte
	err = h.offload(ctx, func() {
		computed = argon2.IDKey([]byte(candidate), d.salt, d.params.Time, d.params.MemKiB, d.params.Par, uint32(len(d.key)))
	})
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	if subtle.ConstantTimeCompare(computed, d.key) != 1 {
		return model.ErrPasswordMismatch
	}
	return nil
}

// offload runs fn on a separate goroutine once a slot is free. If ctx ends
// first, offload returns and fn finishes in the background.
func (h *Hasher) offload(ctx context.Context, fn func()) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer h.sem.Release(1)
		defer close(done)
		fn()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type decoded struct {
	params model.KDFParams
	salt   []byte
	key    []byte
}

func encode(params model.KDFParams, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.MemKiB,
		params.Time,
		params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decode(encoded string) (decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decoded{}, fmt.Errorf("%w: unexpected number of fields", model.ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return decoded{}, fmt.Errorf("%w: unsupported algorithm %q", model.ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return decoded{}, fmt.Errorf("%w: %v", model.ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return decoded{}, fmt.Errorf("%w: unsupported version %d", model.ErrMalformedHash, version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return decoded{}, fmt.Errorf("%w: %v", model.ErrMalformedHash, err)
	}
	if time == 0 || threads == 0 || threads > 255 {
		return decoded{}, fmt.Errorf("%w: invalid parameters", model.ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return decoded{}, fmt.Errorf("%w: bad salt", model.ErrMalformedHash)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > 1<<10 {
		return decoded{}, fmt.Errorf("%w: bad key", model.ErrMalformedHash)
	}

	return decoded{
		params: model.KDFParams{Time: time, MemKiB: memory, Par: uint8(threads)},
		salt:   salt,
		key:    key,
	}, nil
}

package model

import "context"

// MinPasswordLength is the minimum accepted password length in bytes.
const MinPasswordLength = 8

// Password is a raw password that passed length validation. It is never persisted.
type Password struct {
	value string
}

// ParsePassword rejects passwords shorter than MinPasswordLength.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < MinPasswordLength {
		return Password{}, ErrPasswordTooShort
	}
	return Password{value: raw}, nil
}

// String returns the raw password.
func (p Password) String() string {
	return p.value
}

// HashedPassword is an encoded salted password hash, the only persisted password form.
type HashedPassword string

// KDFParams contains work factors for the password KDF.
type KDFParams struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// NewKDFParams creates KDFParams.
func NewKDFParams(time, memKiB uint32, par uint8) KDFParams {
	return KDFParams{Time: time, MemKiB: memKiB, Par: par}
}

// PasswordHasher derives, parses and verifies password hashes.
type PasswordHasher interface {
	Hash(ctx context.Context, password Password) (HashedPassword, error)
	Parse(stored string) (HashedPassword, error)
	// Verify returns nil on match and ErrPasswordMismatch on mismatch.
	Verify(ctx context.Context, hashed HashedPassword, candidate string) error
}

package model

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// DefaultTwoFATTL is how long a pending 2FA challenge stays valid.
const DefaultTwoFATTL = 10 * time.Minute

// TwoFACodeLength is the number of digits in a 2FA code.
const TwoFACodeLength = 6

// TwoFACodeStore holds at most one pending 2FA challenge per email.
type TwoFACodeStore interface {
	// AddCode replaces any existing challenge for the email.
	AddCode(ctx context.Context, email Email, loginAttemptID LoginAttemptID, code TwoFACode) error
	// GetCode returns ErrNotFound if no live challenge exists.
	GetCode(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
	// RemoveCode returns ErrNotFound if no live challenge exists.
	RemoveCode(ctx context.Context, email Email) error
	// ConsumeCode removes the challenge only if it matches loginAttemptID and
	// code, checking and removing in one step. A missing or mismatched
	// challenge returns ErrNotFound and is left untouched.
	ConsumeCode(ctx context.Context, email Email, loginAttemptID LoginAttemptID, code TwoFACode) error
}

// LoginAttemptID identifies one login attempt awaiting a second factor.
type LoginAttemptID struct {
	value string
}

// NewLoginAttemptID generates a random LoginAttemptID.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

// ParseLoginAttemptID accepts canonical UUID strings only.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id.String() != raw {
		return LoginAttemptID{}, ErrInvalidLoginAttemptID
	}
	return LoginAttemptID{value: raw}, nil
}

func (id LoginAttemptID) String() string {
	return id.value
}

// TwoFACode is a one-time numeric code of TwoFACodeLength digits.
type TwoFACode struct {
	value string
}

// NewTwoFACode draws a code uniformly from crypto/rand.
func NewTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return TwoFACode{}, fmt.Errorf("failed to generate 2fa code: %w", err)
	}
	return TwoFACode{value: fmt.Sprintf("%06d", n.Int64())}, nil
}

// ParseTwoFACode accepts exactly TwoFACodeLength ASCII digits.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if len(raw) != TwoFACodeLength {
		return TwoFACode{}, ErrInvalidTwoFACode
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return TwoFACode{}, ErrInvalidTwoFACode
		}
	}
	return TwoFACode{value: raw}, nil
}

func (c TwoFACode) String() string {
	return c.value
}

package model

import "time"

// DefaultTokenTTL is the session token lifetime shared by minting and revocation records.
const DefaultTokenTTL = 10 * time.Minute

// TokenManager mints and parses signed session tokens.
type TokenManager interface {
	GenerateToken(email Email) (string, error)
	// ParseToken checks signature then expiry. It returns ErrTokenMalformed,
	// ErrTokenBadSignature or ErrTokenExpired on failure.
	ParseToken(token string) (Claims, error)
	TTL() time.Duration
}

// Claims are the identity and expiry data carried by a session token.
type Claims struct {
	Email     string
	ExpiresAt time.Time
	ID        string
}

package model

import "context"

// BannedTokenStore records session tokens that must no longer be accepted.
type BannedTokenStore interface {
	// StoreToken is idempotent.
	StoreToken(ctx context.Context, token string) error
	// ContainsToken reports whether the token was revoked. Absence means not revoked.
	ContainsToken(ctx context.Context, token string) (bool, error)
}

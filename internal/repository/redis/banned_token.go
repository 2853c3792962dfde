package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/auth-service/internal/model"
)

const bannedTokenKeyPrefix = "banned_token:"

var _ model.BannedTokenStore = (*BannedTokenRepository)(nil)

// BannedTokenRepository stores revoked tokens under "banned_token:<token>"
// with a TTL equal to the token lifetime.
type BannedTokenRepository struct {
	client Client
	ttl    time.Duration
}

func NewBannedTokenRepository(client Client, ttl time.Duration) *BannedTokenRepository {
	return &BannedTokenRepository{client: client, ttl: ttl}
}

func (r *BannedTokenRepository) StoreToken(ctx context.Context, token string) error {
	if err := r.client.SetEx(ctx, bannedTokenKey(token), true, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store banned token: %w", err)
	}
	return nil
}

func (r *BannedTokenRepository) ContainsToken(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, bannedTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check banned token: %w", err)
	}
	return n > 0, nil
}

func bannedTokenKey(token string) string {
	return bannedTokenKeyPrefix + token
}

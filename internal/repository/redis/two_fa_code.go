package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/auth-service/internal/model"
)

const twoFACodeKeyPrefix = "two_fa_code:"

// consumeScript deletes KEYS[1] only if it still holds ARGV[1].
const consumeScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var _ model.TwoFACodeStore = (*TwoFACodeRepository)(nil)

// TwoFACodeRepository stores one challenge per email under "two_fa_code:<email>"
// as a JSON array [login_attempt_id, code].
type TwoFACodeRepository struct {
	client Client
	ttl    time.Duration
}

func NewTwoFACodeRepository(client Client, ttl time.Duration) *TwoFACodeRepository {
	return &TwoFACodeRepository{client: client, ttl: ttl}
}

func (r *TwoFACodeRepository) AddCode(ctx context.Context, email model.Email, loginAttemptID model.LoginAttemptID, code model.TwoFACode) error {
	value, err := encodeChallenge(loginAttemptID, code)
	if err != nil {
		return err
	}

	if err := r.client.SetEx(ctx, twoFACodeKey(email), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store 2fa code: %w", err)
	}
	return nil
}

func (r *TwoFACodeRepository) GetCode(ctx context.Context, email model.Email) (model.LoginAttemptID, model.TwoFACode, error) {
	value, err := r.client.Get(ctx, twoFACodeKey(email)).Result()
	if errors.Is(err, goredis.Nil) {
		return model.LoginAttemptID{}, model.TwoFACode{}, model.ErrNotFound
	}
	if err != nil {
		return model.LoginAttemptID{}, model.TwoFACode{}, fmt.Errorf("failed to get 2fa code: %w", err)
	}

	var pair [2]string
	if err := json.Unmarshal([]byte(value), &pair); err != nil {
		return model.LoginAttemptID{}, model.TwoFACode{}, fmt.Errorf("failed to unmarshal 2fa code: %w", err)
	}

	loginAttemptID, err := model.ParseLoginAttemptID(pair[0])
	if err != nil {
		return model.LoginAttemptID{}, model.TwoFACode{}, fmt.Errorf("failed to parse stored login attempt id: %w", err)
	}
	code, err := model.ParseTwoFACode(pair[1])
	if err != nil {
		return model.LoginAttemptID{}, model.TwoFACode{}, fmt.Errorf("failed to parse stored 2fa code: %w", err)
	}

	return loginAttemptID, code, nil
}

// RemoveCode deletes the challenge. DEL is atomic, so only one of several
// concurrent callers sees a deleted key.
func (r *TwoFACodeRepository) RemoveCode(ctx context.Context, email model.Email) error {
	n, err := r.client.Del(ctx, twoFACodeKey(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove 2fa code: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ConsumeCode compares and deletes in a single server-side script, so a
// challenge replaced by a concurrent AddCode is never removed here.
func (r *TwoFACodeRepository) ConsumeCode(ctx context.Context, email model.Email, loginAttemptID model.LoginAttemptID, code model.TwoFACode) error {
	value, err := encodeChallenge(loginAttemptID, code)
	if err != nil {
		return err
	}

	n, err := r.client.Eval(ctx, consumeScript, []string{twoFACodeKey(email)}, value).Int64()
	if err != nil {
		return fmt.Errorf("failed to consume 2fa code: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func encodeChallenge(loginAttemptID model.LoginAttemptID, code model.TwoFACode) (string, error) {
	value, err := json.Marshal([2]string{loginAttemptID.String(), code.String()})
	if err != nil {
		return "", fmt.Errorf("failed to marshal 2fa code: %w", err)
	}
	return string(value), nil
}

func twoFACodeKey(email model.Email) string {
	return twoFACodeKeyPrefix + email.String()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

// TokenService issues, validates and revokes session tokens. It composes the
// TokenManager and the BannedTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.BannedTokenStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.BannedTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// TTL returns the session token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.manager.TTL()
}

func (s *TokenService) Issue(email model.Email) (string, error) {
	token, err := s.manager.GenerateToken(email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Validate checks the signature and expiry first, and only consults the
// banned token store for tokens that pass both.
func (s *TokenService) Validate(ctx context.Context, token string) (model.Claims, error) {
	claims, err := s.manager.ParseToken(token)
	if err != nil {
		return model.Claims{}, err
	}

	banned, err := s.store.ContainsToken(ctx, token)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if banned {
		return model.Claims{}, model.ErrTokenRevoked
	}

	return claims, nil
}

// Revoke adds token to the banned token store.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.store.StoreToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// VerifyToken validates a bare token for other services without mutating any state.
func (s *TokenService) VerifyToken(ctx context.Context, token string) error {
	if token == "" {
		return apierrors.NewErrMissingToken()
	}

	_, err := s.Validate(ctx, token)
	if err != nil {
		if isTokenError(err) {
			s.logger.Debug("Token service: token rejected",
				"error", err.Error())
			return apierrors.NewErrInvalidToken(err)
		}
		s.logger.Error("Token service: failed to validate token",
			"error", err.Error())
		return apierrors.NewErrUnexpected(err)
	}

	return nil
}

func isTokenError(err error) bool {
	return errors.Is(err, model.ErrTokenMalformed) ||
		errors.Is(err, model.ErrTokenBadSignature) ||
		errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrTokenRevoked)
}

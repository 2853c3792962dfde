package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/mocks"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/testutil"
)

func TestTokenService_Validate(t *testing.T) {
	t.Parallel()

	claims := model.Claims{Email: testEmail, ExpiresAt: time.Now().Add(time.Minute), ID: "jti"}

	tests := []struct {
		name    string
		setup   func(m *mocks.TokenManager, s *mocks.BannedTokenStore)
		wantErr error
	}{
		{
			name: "valid",
			setup: func(m *mocks.TokenManager, s *mocks.BannedTokenStore) {
				m.On("ParseToken", "tok").Return(claims, nil)
				s.On("ContainsToken", mock.Anything, "tok").Return(false, nil)
			},
		},
		{
			name: "revoked",
			setup: func(m *mocks.TokenManager, s *mocks.BannedTokenStore) {
				m.On("ParseToken", "tok").Return(claims, nil)
				s.On("ContainsToken", mock.Anything, "tok").Return(true, nil)
			},
			wantErr: model.ErrTokenRevoked,
		},
		{
			name: "expired skips store",
			setup: func(m *mocks.TokenManager, _ *mocks.BannedTokenStore) {
				m.On("ParseToken", "tok").Return(model.Claims{}, model.ErrTokenExpired)
			},
			wantErr: model.ErrTokenExpired,
		},
		{
			name: "bad signature skips store",
			setup: func(m *mocks.TokenManager, _ *mocks.BannedTokenStore) {
				m.On("ParseToken", "tok").Return(model.Claims{}, model.ErrTokenBadSignature)
			},
			wantErr: model.ErrTokenBadSignature,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := mocks.NewTokenManager(t)
			s := mocks.NewBannedTokenStore(t)
			tt.setup(m, s)

			svc := NewTokenService(m, s, testutil.MakeNoopLogger())
			got, err := svc.Validate(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, claims, got)
		})
	}
}

func TestTokenService_VerifyToken(t *testing.T) {
	t.Parallel()

	claims := model.Claims{Email: testEmail, ExpiresAt: time.Now().Add(time.Minute), ID: "jti"}

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		svc := NewTokenService(mocks.NewTokenManager(t), mocks.NewBannedTokenStore(t), testutil.MakeNoopLogger())
		assert.ErrorIs(t, svc.VerifyToken(context.Background(), ""), apierrors.NewErrMissingToken())
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		m := mocks.NewTokenManager(t)
		m.On("ParseToken", "junk").Return(model.Claims{}, model.ErrTokenMalformed)
		svc := NewTokenService(m, mocks.NewBannedTokenStore(t), testutil.MakeNoopLogger())

		assert.ErrorIs(t, svc.VerifyToken(context.Background(), "junk"), apierrors.NewErrInvalidToken(nil))
	})

	t.Run("store failure is unexpected", func(t *testing.T) {
		t.Parallel()
		m := mocks.NewTokenManager(t)
		s := mocks.NewBannedTokenStore(t)
		m.On("ParseToken", "tok").Return(claims, nil)
		s.On("ContainsToken", mock.Anything, "tok").Return(false, errors.New("redis down"))
		svc := NewTokenService(m, s, testutil.MakeNoopLogger())

		assert.ErrorIs(t, svc.VerifyToken(context.Background(), "tok"), apierrors.NewErrUnexpected(nil))
	})

	t.Run("valid does not mutate store", func(t *testing.T) {
		t.Parallel()
		m := mocks.NewTokenManager(t)
		s := mocks.NewBannedTokenStore(t)
		m.On("ParseToken", "tok").Return(claims, nil)
		s.On("ContainsToken", mock.Anything, "tok").Return(false, nil)
		svc := NewTokenService(m, s, testutil.MakeNoopLogger())

		require.NoError(t, svc.VerifyToken(context.Background(), "tok"))
		s.AssertNotCalled(t, "StoreToken", mock.Anything, mock.Anything)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	t.Parallel()

	s := mocks.NewBannedTokenStore(t)
	s.On("StoreToken", mock.Anything, "tok").Return(errors.New("redis down"))
	svc := NewTokenService(mocks.NewTokenManager(t), s, testutil.MakeNoopLogger())

	err := svc.Revoke(context.Background(), "tok")
	assert.ErrorContains(t, err, "failed to revoke token")
}

func TestTokenService_Issue(t *testing.T) {
	t.Parallel()

	m := mocks.NewTokenManager(t)
	email := mustEmail(t, testEmail)
	m.On("GenerateToken", email).Return("", errors.New("sign failed"))
	m.On("TTL").Return(time.Minute)
	svc := NewTokenService(m, mocks.NewBannedTokenStore(t), testutil.MakeNoopLogger())

	_, err := svc.Issue(email)
	assert.ErrorContains(t, err, "failed to issue token")
	assert.Equal(t, time.Minute, svc.TTL())
}

package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "invalid token",
			in:       apierrors.NewErrInvalidToken(model.ErrTokenExpired),
			wantCode: codes.Unauthenticated,
			wantMsg:  "Invalid auth token",
		},
		{
			name:     "missing token",
			in:       apierrors.NewErrMissingToken(),
			wantCode: codes.InvalidArgument,
			wantMsg:  "Missing auth token",
		},
		{
			name:     "unexpected hides cause",
			in:       apierrors.NewErrUnexpected(errors.New("redis: connection refused")),
			wantCode: codes.Internal,
			wantMsg:  "Unexpected error",
		},
		{
			name:     "plain error -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "Unexpected error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, ok := status.FromError(handleError(tt.in))
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/metrics"
	"github.com/dtroode/auth-service/internal/mocks"
	"github.com/dtroode/auth-service/internal/model"
	"github.com/dtroode/auth-service/internal/testutil"
)

func newHandler(t *testing.T) (*Auth, *mocks.AuthService, *mocks.TokenVerifier) {
	t.Helper()
	svc := mocks.NewAuthService(t)
	tokens := mocks.NewTokenVerifier(t)
	return NewAuth(svc, tokens, metrics.New(), testutil.MakeNoopLogger()), svc, tokens
}

func post(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func findCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == JWTCookieName {
			return c
		}
	}
	return nil
}

func TestAuth_Signup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setup      func(svc *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"email":"user@example.com","password":"password123","requires2FA":true}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Signup", mock.Anything, "user@example.com", "password123", true).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"User created successfully!"}`,
		},
		{
			name: "invalid credentials",
			body: `{"email":"","password":"password123","requires2FA":false}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Signup", mock.Anything, "", "password123", false).Return(apierrors.NewErrInvalidCredentials())
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid credentials"}`,
		},
		{
			name: "already exists",
			body: `{"email":"user@example.com","password":"password123","requires2FA":false}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Signup", mock.Anything, "user@example.com", "password123", false).Return(apierrors.NewErrUserAlreadyExists())
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"User already exists"}`,
		},
		{
			name: "unexpected hides cause",
			body: `{"email":"user@example.com","password":"password123","requires2FA":false}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Signup", mock.Anything, "user@example.com", "password123", false).Return(apierrors.NewErrUnexpected(assert.AnError))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Unexpected error"}`,
		},
		{
			name:       "missing field",
			body:       `{"password":"password123","requires2FA":true}`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing flag",
			body:       `{"email":"user@example.com","password":"password123"}`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "wrong type",
			body:       `{"email":true,"password":"password123","requires2FA":"yes"}`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "not json",
			body:       `email=user@example.com`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "oversized body",
			body:       `{"email":"user@example.com","password":"` + strings.Repeat("a", maxBodyBytes) + `","requires2FA":false}`,
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"Unprocessable request body"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc, _ := newHandler(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			h.Signup(rec, post("/signup", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("sets cookie", func(t *testing.T) {
		t.Parallel()
		h, svc, tokens := newHandler(t)
		svc.On("Login", mock.Anything, "user@example.com", "password123").
			Return(model.LoginResult{Token: "signed.jwt"}, nil)
		tokens.On("TTL").Return(10 * time.Minute)

		rec := httptest.NewRecorder()
		h.Login(rec, post("/login", `{"email":"user@example.com","password":"password123"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		c := findCookie(rec)
		require.NotNil(t, c)
		assert.Equal(t, "signed.jwt", c.Value)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, 600, c.MaxAge)
	})

	t.Run("two factor returns partial content", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		id, err := model.ParseLoginAttemptID("3f2a6c1e-8b4d-4e8a-9f1c-2d7b5a6e9c01")
		require.NoError(t, err)
		svc.On("Login", mock.Anything, "user@example.com", "password123").
			Return(model.LoginResult{LoginAttemptID: id}, nil)

		rec := httptest.NewRecorder()
		h.Login(rec, post("/login", `{"email":"user@example.com","password":"password123"}`))

		assert.Equal(t, http.StatusPartialContent, rec.Code)
		assert.JSONEq(t, `{"message":"2FA required","loginAttemptId":"3f2a6c1e-8b4d-4e8a-9f1c-2d7b5a6e9c01"}`, rec.Body.String())
		assert.Nil(t, findCookie(rec))
	})

	t.Run("incorrect credentials", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Login", mock.Anything, "user@example.com", "password123").
			Return(model.LoginResult{}, apierrors.NewErrIncorrectCredentials())

		rec := httptest.NewRecorder()
		h.Login(rec, post("/login", `{"email":"user@example.com","password":"password123"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Incorrect credentials"}`, rec.Body.String())
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newHandler(t)

		rec := httptest.NewRecorder()
		h.Login(rec, post("/login", `{"password":"password123"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAuth_VerifyTwoFA(t *testing.T) {
	t.Parallel()

	body := `{"email":"user@example.com","loginAttemptId":"3f2a6c1e-8b4d-4e8a-9f1c-2d7b5a6e9c01","2FACode":"123456"}`

	t.Run("sets cookie", func(t *testing.T) {
		t.Parallel()
		h, svc, tokens := newHandler(t)
		svc.On("VerifyTwoFA", mock.Anything, "user@example.com", "3f2a6c1e-8b4d-4e8a-9f1c-2d7b5a6e9c01", "123456").
			Return("signed.jwt", nil)
		tokens.On("TTL").Return(time.Minute)

		rec := httptest.NewRecorder()
		h.VerifyTwoFA(rec, post("/verify-2fa", body))

		require.Equal(t, http.StatusOK, rec.Code)
		c := findCookie(rec)
		require.NotNil(t, c)
		assert.Equal(t, "signed.jwt", c.Value)
	})

	t.Run("incorrect", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("VerifyTwoFA", mock.Anything, "user@example.com", "3f2a6c1e-8b4d-4e8a-9f1c-2d7b5a6e9c01", "123456").
			Return("", apierrors.NewErrIncorrectCredentials())

		rec := httptest.NewRecorder()
		h.VerifyTwoFA(rec, post("/verify-2fa", body))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, findCookie(rec))
	})

	t.Run("missing code", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newHandler(t)

		rec := httptest.NewRecorder()
		h.VerifyTwoFA(rec, post("/verify-2fa", `{"email":"user@example.com","loginAttemptId":"x"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	t.Run("cookie token is revoked and cleared", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "signed.jwt").Return(nil)

		req := post("/logout", "")
		req.AddCookie(&http.Cookie{Name: JWTCookieName, Value: "signed.jwt"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		c := findCookie(rec)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	})

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "signed.jwt").Return(nil)

		req := post("/logout", "")
		req.Header.Set("Authorization", "Bearer signed.jwt")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "").Return(apierrors.NewErrMissingToken())

		rec := httptest.NewRecorder()
		h.Logout(rec, post("/logout", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing auth token"}`, rec.Body.String())
	})

	t.Run("invalid token keeps cookie", func(t *testing.T) {
		t.Parallel()
		h, svc, _ := newHandler(t)
		svc.On("Logout", mock.Anything, "bad").Return(apierrors.NewErrInvalidToken(model.ErrTokenMalformed))

		req := post("/logout", "")
		req.AddCookie(&http.Cookie{Name: JWTCookieName, Value: "bad"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid auth token"}`, rec.Body.String())
		assert.Nil(t, findCookie(rec))
	})
}

func TestAuth_VerifyToken(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		h, _, tokens := newHandler(t)
		tokens.On("VerifyToken", mock.Anything, "signed.jwt").Return(nil)

		rec := httptest.NewRecorder()
		h.VerifyToken(rec, post("/verify-token", `{"token":"signed.jwt"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("revoked", func(t *testing.T) {
		t.Parallel()
		h, _, tokens := newHandler(t)
		tokens.On("VerifyToken", mock.Anything, "signed.jwt").Return(apierrors.NewErrInvalidToken(model.ErrTokenRevoked))

		rec := httptest.NewRecorder()
		h.VerifyToken(rec, post("/verify-token", `{"token":"signed.jwt"}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newHandler(t)

		rec := httptest.NewRecorder()
		h.VerifyToken(rec, post("/verify-token", `{"token":""}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		h, _, _ := newHandler(t)

		rec := httptest.NewRecorder()
		h.VerifyToken(rec, post("/verify-token", `{}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

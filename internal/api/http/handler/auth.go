package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/metrics"
	"github.com/dtroode/auth-service/internal/model"
)

// JWTCookieName is the cookie carrying the session token.
const JWTCookieName = "jwt"

// AuthService defines the user-facing auth operations.
type AuthService interface {
	Signup(ctx context.Context, email, password string, requiresTwoFA bool) error
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	VerifyTwoFA(ctx context.Context, email, loginAttemptID, code string) (string, error)
	Logout(ctx context.Context, token string) error
}

// TokenVerifier checks session tokens without mutating state.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
	TTL() time.Duration
}

type signupRequest struct {
	Email         *string `json:"email" validate:"required"`
	Password      *string `json:"password" validate:"required"`
	RequiresTwoFA *bool   `json:"requires2FA" validate:"required"`
}

type loginRequest struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type verifyTwoFARequest struct {
	Email          *string `json:"email" validate:"required"`
	LoginAttemptID *string `json:"loginAttemptId" validate:"required"`
	TwoFACode      *string `json:"2FACode" validate:"required"`
}

type verifyTokenRequest struct {
	Token *string `json:"token" validate:"required"`
}

type twoFactorResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

// Auth handles the HTTP auth routes.
type Auth struct {
	authService   AuthService
	tokenVerifier TokenVerifier
	metrics       *metrics.Metrics
	logger        *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenVerifier TokenVerifier, metrics *metrics.Metrics, logger *logger.Logger) *Auth {
	return &Auth{
		authService:   authService,
		tokenVerifier: tokenVerifier,
		metrics:       metrics,
		logger:        logger,
	}
}

// Signup handles POST /signup.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Auth handler: malformed signup request",
			"error", err.Error())
		writeError(w, err)
		return
	}

	err := h.authService.Signup(r.Context(), *req.Email, *req.Password, *req.RequiresTwoFA)
	h.metrics.ObserveAuth("signup", err)
	if err != nil {
		h.fail(w, "signup", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully!"})
}

// Login handles POST /login. Users with 2FA get 206 and a login attempt id
// instead of the session cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Auth handler: malformed login request",
			"error", err.Error())
		writeError(w, err)
		return
	}

	res, err := h.authService.Login(r.Context(), *req.Email, *req.Password)
	h.metrics.ObserveAuth("login", err)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	if res.TwoFactorRequired() {
		writeJSON(w, http.StatusPartialContent, twoFactorResponse{
			Message:        "2FA required",
			LoginAttemptID: res.LoginAttemptID.String(),
		})
		return
	}

	h.setAuthCookie(w, r, res.Token)
	w.WriteHeader(http.StatusOK)
}

// VerifyTwoFA handles POST /verify-2fa.
func (h *Auth) VerifyTwoFA(w http.ResponseWriter, r *http.Request) {
	var req verifyTwoFARequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Auth handler: malformed verify-2fa request",
			"error", err.Error())
		writeError(w, err)
		return
	}

	token, err := h.authService.VerifyTwoFA(r.Context(), *req.Email, *req.LoginAttemptID, *req.TwoFACode)
	h.metrics.ObserveAuth("verify_2fa", err)
	if err != nil {
		h.fail(w, "verify-2fa", err)
		return
	}

	h.setAuthCookie(w, r, token)
	w.WriteHeader(http.StatusOK)
}

// Logout handles POST /logout. The token comes from the jwt cookie or a
// bearer Authorization header.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)

	err := h.authService.Logout(r.Context(), token)
	h.metrics.ObserveAuth("logout", err)
	if err != nil {
		h.fail(w, "logout", err)
		return
	}

	h.clearAuthCookie(w, r)
	w.WriteHeader(http.StatusOK)
}

// VerifyToken handles POST /verify-token. An empty token is reported as invalid.
func (h *Auth) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	var err error
	if *req.Token == "" {
		err = apierrors.NewErrInvalidToken(model.ErrTokenMalformed)
	} else {
		err = h.tokenVerifier.VerifyToken(r.Context(), *req.Token)
	}
	h.metrics.ObserveAuth("verify_token", err)
	if err != nil {
		h.fail(w, "verify-token", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Auth) fail(w http.ResponseWriter, route string, err error) {
	apiErr := apierrors.From(err)
	if apiErr.Kind == apierrors.KindUnexpected {
		h.logger.Error("Auth handler: request failed",
			"route", route,
			"error", err.Error())
	} else {
		h.logger.Info("Auth handler: request rejected",
			"route", route,
			"kind", string(apiErr.Kind))
	}
	writeError(w, apiErr)
}

func (h *Auth) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenVerifier.TTL().Seconds()),
	})
}

func (h *Auth) clearAuthCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(JWTCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

package service

import (
	"context"
	"errors"

	"github.com/dtroode/auth-service/internal/apierrors"
	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

const twoFAEmailSubject = "2FA Code"

// Auth drives signup, login, 2FA verification and logout. Every returned
// error is an *apierrors.APIError.
type Auth struct {
	userStore      model.UserStore
	twoFACodeStore model.TwoFACodeStore
	emailClient    model.EmailClient
	hasher         model.PasswordHasher
	tokenService   *TokenService
	logger         *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	twoFACodeStore model.TwoFACodeStore,
	emailClient model.EmailClient,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:      userStore,
		twoFACodeStore: twoFACodeStore,
		emailClient:    emailClient,
		hasher:         hasher,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Signup registers a new user. Only the password hash is stored.
func (a *Auth) Signup(ctx context.Context, rawEmail, rawPassword string, requiresTwoFA bool) error {
	a.logger.Debug("Auth service: starting user registration",
		"email", rawEmail)

	email, password, err := parseCredentials(rawEmail, rawPassword)
	if err != nil {
		return err
	}

	hashed, err := a.hasher.Hash(ctx, password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", rawEmail,
			"error", err.Error())
		return apierrors.NewErrUnexpected(err)
	}

	err = a.userStore.AddUser(ctx, model.NewUser(email, hashed, requiresTwoFA))
	if errors.Is(err, model.ErrUserAlreadyExists) {
		a.logger.Info("Auth service: user already exists",
			"email", rawEmail)
		return apierrors.NewErrUserAlreadyExists()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to add user",
			"email", rawEmail,
			"error", err.Error())
		return apierrors.NewErrUnexpected(err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"email", rawEmail,
		"requires_2fa", requiresTwoFA)

	return nil
}

// Login checks credentials. Users without 2FA get a session token; users with
// 2FA get a fresh challenge, which replaces any pending one, and no token.
func (a *Auth) Login(ctx context.Context, rawEmail, rawPassword string) (model.LoginResult, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", rawEmail)

	email, password, err := parseCredentials(rawEmail, rawPassword)
	if err != nil {
		return model.LoginResult{}, err
	}

	err = a.userStore.ValidateUser(ctx, email, password.String())
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidCredentials) {
		a.logger.Info("Auth service: incorrect credentials",
			"email", rawEmail)
		return model.LoginResult{}, apierrors.NewErrIncorrectCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to validate user",
			"email", rawEmail,
			"error", err.Error())
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	user, err := a.userStore.GetUser(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.LoginResult{}, apierrors.NewErrIncorrectCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user",
			"email", rawEmail,
			"error", err.Error())
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	if user.RequiresTwoFA {
		return a.startTwoFA(ctx, email)
	}

	token, err := a.tokenService.Issue(email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", rawEmail,
			"error", err.Error())
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"email", rawEmail)

	return model.LoginResult{Token: token}, nil
}

func (a *Auth) startTwoFA(ctx context.Context, email model.Email) (model.LoginResult, error) {
	loginAttemptID := model.NewLoginAttemptID()
	code, err := model.NewTwoFACode()
	if err != nil {
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	if err := a.twoFACodeStore.AddCode(ctx, email, loginAttemptID, code); err != nil {
		a.logger.Error("Auth service: failed to store 2fa code",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	if err := a.emailClient.SendEmail(ctx, email, twoFAEmailSubject, code.String()); err != nil {
		a.logger.Error("Auth service: failed to send 2fa code",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, apierrors.NewErrUnexpected(err)
	}

	a.logger.Info("Auth service: 2fa challenge issued",
		"email", email.String(),
		"login_attempt_id", loginAttemptID.String())

	return model.LoginResult{LoginAttemptID: loginAttemptID}, nil
}

// VerifyTwoFA consumes the pending challenge for email and returns a session
// token. A challenge can be consumed once; replays fail as incorrect credentials.
func (a *Auth) VerifyTwoFA(ctx context.Context, rawEmail, rawLoginAttemptID, rawCode string) (string, error) {
	a.logger.Debug("Auth service: verifying 2fa code",
		"email", rawEmail)

	email, err := model.ParseEmail(rawEmail)
	if err != nil {
		return "", apierrors.NewErrInvalidCredentials()
	}
	loginAttemptID, err := model.ParseLoginAttemptID(rawLoginAttemptID)
	if err != nil {
		return "", apierrors.NewErrInvalidCredentials()
	}
	code, err := model.ParseTwoFACode(rawCode)
	if err != nil {
		return "", apierrors.NewErrInvalidCredentials()
	}

	// Consuming is the single-use gate: of several concurrent verifications
	// only one removes the challenge, and a challenge superseded by a newer
	// login no longer matches.
	err = a.twoFACodeStore.ConsumeCode(ctx, email, loginAttemptID, code)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: incorrect 2fa code",
			"email", rawEmail)
		return "", apierrors.NewErrIncorrectCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to consume 2fa code",
			"email", rawEmail,
			"error", err.Error())
		return "", apierrors.NewErrUnexpected(err)
	}

	token, err := a.tokenService.Issue(email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", rawEmail,
			"error", err.Error())
		return "", apierrors.NewErrUnexpected(err)
	}

	a.logger.Info("Auth service: 2fa verification completed successfully",
		"email", rawEmail)

	return token, nil
}

// Logout validates token and bans it for the rest of its lifetime.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apierrors.NewErrMissingToken()
	}

	claims, err := a.tokenService.Validate(ctx, token)
	if err != nil {
		if isTokenError(err) {
			a.logger.Info("Auth service: logout with invalid token",
				"error", err.Error())
			return apierrors.NewErrInvalidToken(err)
		}
		a.logger.Error("Auth service: failed to validate token",
			"error", err.Error())
		return apierrors.NewErrUnexpected(err)
	}

	if err := a.tokenService.Revoke(ctx, token); err != nil {
		a.logger.Error("Auth service: failed to revoke token",
			"email", claims.Email,
			"error", err.Error())
		return apierrors.NewErrUnexpected(err)
	}

	a.logger.Info("Auth service: logout completed successfully",
		"email", claims.Email)

	return nil
}

// parseCredentials collapses email and password format problems into one
// client-visible error.
func parseCredentials(rawEmail, rawPassword string) (model.Email, model.Password, error) {
	email, err := model.ParseEmail(rawEmail)
	if err != nil {
		return model.Email{}, model.Password{}, apierrors.NewErrInvalidCredentials()
	}
	password, err := model.ParsePassword(rawPassword)
	if err != nil {
		return model.Email{}, model.Password{}, apierrors.NewErrInvalidCredentials()
	}
	return email, password, nil
}

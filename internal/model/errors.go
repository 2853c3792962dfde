package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record is absent or has expired.
	ErrNotFound = errors.New("not found")
	// ErrUserAlreadyExists is returned when adding a user whose email is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by user stores when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrInvalidEmail          = errors.New("invalid email")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrMalformedHash         = errors.New("malformed password hash")
	ErrPasswordMismatch      = errors.New("password mismatch")
	ErrInvalidLoginAttemptID = errors.New("invalid login attempt id")
	ErrInvalidTwoFACode      = errors.New("invalid 2fa code")
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenRevoked      = errors.New("token revoked")
)

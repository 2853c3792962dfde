// Package apierrors defines the client-visible outcome kinds of the auth core.
// Each kind maps to exactly one HTTP status and one gRPC code; internal causes
// are kept for logging and never rendered to clients.
package apierrors

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind identifies a client-visible failure.
type Kind string

const (
	KindInvalidCredentials   Kind = "invalid_credentials"
	KindIncorrectCredentials Kind = "incorrect_credentials"
	KindUserAlreadyExists    Kind = "user_already_exists"
	KindMissingToken         Kind = "missing_token"
	KindInvalidToken         Kind = "invalid_token"
	KindUnexpected           Kind = "unexpected_error"
)

// APIError is a typed failure returned by services.
type APIError struct {
	Kind     Kind
	HTTPCode int
	GRPCCode codes.Code
	Message  string
	cause    error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the internal cause, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches any APIError of the same kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, httpCode int, grpcCode codes.Code, msg string, cause error) *APIError {
	return &APIError{Kind: kind, HTTPCode: httpCode, GRPCCode: grpcCode, Message: msg, cause: cause}
}

// NewErrInvalidCredentials reports malformed email, password, attempt id or code.
func NewErrInvalidCredentials() *APIError {
	return newError(KindInvalidCredentials, http.StatusBadRequest, codes.InvalidArgument, "Invalid credentials", nil)
}

// NewErrIncorrectCredentials reports well-formed but wrong credentials.
func NewErrIncorrectCredentials() *APIError {
	return newError(KindIncorrectCredentials, http.StatusUnauthorized, codes.Unauthenticated, "Incorrect credentials", nil)
}

func NewErrUserAlreadyExists() *APIError {
	return newError(KindUserAlreadyExists, http.StatusConflict, codes.AlreadyExists, "User already exists", nil)
}

func NewErrMissingToken() *APIError {
	return newError(KindMissingToken, http.StatusBadRequest, codes.InvalidArgument, "Missing auth token", nil)
}

// NewErrInvalidToken reports an expired, revoked, tampered or malformed token.
func NewErrInvalidToken(cause error) *APIError {
	return newError(KindInvalidToken, http.StatusUnauthorized, codes.Unauthenticated, "Invalid auth token", cause)
}

// NewErrUnexpected wraps an infrastructure failure.
func NewErrUnexpected(cause error) *APIError {
	return newError(KindUnexpected, http.StatusInternalServerError, codes.Internal, "Unexpected error", cause)
}

// From returns err as an APIError, treating anything else as unexpected.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewErrUnexpected(err)
}

package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Email is a syntactically valid, case-sensitive email address.
type Email struct {
	value string
}

// ParseEmail validates raw and returns it as an Email without any normalization.
func ParseEmail(raw string) (Email, error) {
	if err := validate.Var(raw, "required,email"); err != nil {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return Email{value: raw}, nil
}

// String returns the address exactly as it was parsed.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was never parsed.
func (e Email) IsZero() bool {
	return e.value == ""
}

package service

import (
	"errors"
	"fmt"

	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("confirmation token is invalid or expired")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUpstream           = errors.New("identity provider unavailable")
)

// ValidationError names the offending field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// mapIdentityErr translates provider failures into service errors. Anything
// the provider does not classify is treated as an upstream failure.
func mapIdentityErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, identity.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, identity.ErrEmailTaken):
		return ErrEmailTaken
	case errors.Is(err, identity.ErrInvalidToken):
		return ErrInvalidToken
	case errors.Is(err, identity.ErrNotFound):
		return ErrUnauthenticated
	default:
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}

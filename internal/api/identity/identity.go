// Package identity is the contract with the identity provider that owns
// credentials and email confirmation, plus a local sqlite backed provider.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrInvalidToken       = errors.New("identity: confirmation token is invalid or expired")
	ErrNotFound           = errors.New("identity: account not found")

	// ErrUnavailable wraps any failure of the provider itself.
	ErrUnavailable = errors.New("identity: provider unavailable")
)

// Identity is what the provider knows about a subject.
type Identity struct {
	SubjectID      string
	Email          string
	EmailConfirmed bool
}

// Provider verifies credentials and manages accounts by subject id.
type Provider interface {
	// CreateAccount registers email. When confirmation is required the
	// account starts unconfirmed and a confirmation token is sent out.
	CreateAccount(ctx context.Context, email, password string) (Identity, error)

	// VerifyCredentials returns ErrInvalidCredentials for an unknown email or
	// a wrong password. An unconfirmed account is returned with
	// EmailConfirmed false; rejecting it is up to the caller.
	VerifyCredentials(ctx context.Context, email, password string) (Identity, error)

	ConfirmEmail(ctx context.Context, token string) (Identity, error)

	GetAccount(ctx context.Context, subjectID string) (Identity, error)

	// ChangePassword returns ErrInvalidCredentials when current is wrong.
	ChangePassword(ctx context.Context, subjectID, current, next string) error

	DeleteAccount(ctx context.Context, subjectID string) error
}

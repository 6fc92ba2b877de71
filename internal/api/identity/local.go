package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/pkg/cryptox"
	"github.com/so-ota-biz/fridge-chef/pkg/idx"
)

// DefaultConfirmationTTL is how long a confirmation token stays valid.
const DefaultConfirmationTTL = 24 * time.Hour

// Local keeps accounts in the service's own database and hashes passwords
// with argon2id.
type Local struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Notifier Notifier
	Logger   *slog.Logger

	RequireConfirmation bool
	ConfirmationTTL     time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

var _ Provider = (*Local)(nil)

func (l *Local) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

func (l *Local) ttl() time.Duration {
	if l.ConfirmationTTL <= 0 {
		return DefaultConfirmationTTL
	}
	return l.ConfirmationTTL
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func toIdentity(a domain.Account) Identity {
	return Identity{SubjectID: a.ID, Email: a.Email, EmailConfirmed: a.EmailConfirmed}
}

func (l *Local) CreateAccount(ctx context.Context, email, password string) (Identity, error) {
	hash, err := l.Hasher.Hash(password)
	if err != nil {
		return Identity{}, unavailable("hash password", err)
	}

	acc := domain.Account{
		ID:             idx.New().String(),
		Email:          strings.ToLower(email),
		PasswordHash:   hash,
		EmailConfirmed: !l.RequireConfirmation,
	}

	var token string
	if l.RequireConfirmation {
		token, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return Identity{}, unavailable("confirmation token", err)
		}
		fp := cryptox.FingerprintToken(token)
		expires := l.now().Add(l.ttl())
		acc.ConfirmationHash = &fp
		acc.ConfirmationExpiresAt = &expires
	}

	if err := l.Store.Accounts().CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Identity{}, ErrEmailTaken
		}
		return Identity{}, unavailable("create account", err)
	}

	if token != "" && l.Notifier != nil {
		if err := l.Notifier.SendConfirmation(ctx, acc.Email, token); err != nil {
			// Without the token nobody can confirm; let the caller sign up again.
			if derr := l.Store.Accounts().DeleteAccount(ctx, acc.ID); derr != nil {
				l.logger().ErrorContext(ctx, "failed to remove unconfirmable account", "account_id", acc.ID, "err", derr)
			}
			return Identity{}, unavailable("send confirmation", err)
		}
	}

	return toIdentity(acc), nil
}

func (l *Local) VerifyCredentials(ctx context.Context, email, password string) (Identity, error) {
	acc, err := l.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, unavailable("get account", err)
	}

	if err := l.checkPassword(password, acc.PasswordHash); err != nil {
		return Identity{}, err
	}
	return toIdentity(acc), nil
}

func (l *Local) ConfirmEmail(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	acc, err := l.Store.Accounts().GetAccountByConfirmationHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, unavailable("get account", err)
	}
	if acc.ConfirmationExpiresAt != nil && !l.now().Before(*acc.ConfirmationExpiresAt) {
		return Identity{}, ErrInvalidToken
	}

	if err := l.Store.Accounts().ConfirmAccount(ctx, acc.ID); err != nil {
		return Identity{}, unavailable("confirm account", err)
	}

	acc.EmailConfirmed = true
	return toIdentity(acc), nil
}

func (l *Local) GetAccount(ctx context.Context, subjectID string) (Identity, error) {
	acc, err := l.getAccount(ctx, subjectID)
	if err != nil {
		return Identity{}, err
	}
	return toIdentity(acc), nil
}

func (l *Local) ChangePassword(ctx context.Context, subjectID, current, next string) error {
	acc, err := l.getAccount(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := l.checkPassword(current, acc.PasswordHash); err != nil {
		return err
	}

	hash, err := l.Hasher.Hash(next)
	if err != nil {
		return unavailable("hash password", err)
	}
	if err := l.Store.Accounts().UpdatePasswordHash(ctx, subjectID, hash); err != nil {
		return unavailable("update password", err)
	}
	return nil
}

func (l *Local) DeleteAccount(ctx context.Context, subjectID string) error {
	if err := l.Store.Accounts().DeleteAccount(ctx, subjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return unavailable("delete account", err)
	}
	return nil
}

func (l *Local) getAccount(ctx context.Context, subjectID string) (domain.Account, error) {
	acc, err := l.Store.Accounts().GetAccountByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, unavailable("get account", err)
	}
	return acc, nil
}

func (l *Local) checkPassword(password, hash string) error {
	switch err := l.Hasher.Verify(password, hash); {
	case err == nil:
		return nil
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return ErrInvalidCredentials
	default:
		return unavailable("verify password", err)
	}
}

func (l *Local) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

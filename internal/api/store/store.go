package store

import (
	"context"
	"errors"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and hand
// out one repository per table so transactions stay explicit.
type Store interface {
	Accounts() Accounts
	Users() Users
	Records() Records

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account. A taken email is ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches the lower-cased email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByConfirmationHash returns the unconfirmed account holding
	// the given token fingerprint.
	GetAccountByConfirmationHash(ctx context.Context, hash string) (domain.Account, error)

	// ConfirmAccount flips email_confirmed and clears the confirmation token.
	ConfirmAccount(ctx context.Context, id string) error

	UpdatePasswordHash(ctx context.Context, id, hash string) error

	// DeleteAccount cascades to the user row and its records (per schema).
	DeleteAccount(ctx context.Context, id string) error

	// DeleteExpiredUnconfirmed removes accounts whose confirmation window
	// closed before now and returns how many went.
	DeleteExpiredUnconfirmed(ctx context.Context, now time.Time) (int64, error)
}

type Users interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// UpdateProfile writes the non-nil fields and bumps updated_at.
	UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) error

	// DeleteUser cascades to records (per schema).
	DeleteUser(ctx context.Context, id string) error
}

type Records interface {
	CreateRecord(ctx context.Context, r domain.Record) error
	GetRecordByID(ctx context.Context, id string) (domain.Record, error)

	// ListRecords returns one page of q.UserID's records plus the total
	// number matching the filter.
	ListRecords(ctx context.Context, q domain.RecordQuery) ([]domain.Record, int, error)

	DeleteRecord(ctx context.Context, id string) error
}

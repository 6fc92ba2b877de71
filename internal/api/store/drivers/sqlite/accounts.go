package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
)

type accountsRepo struct {
	q dbtx
}

const accountColumns = `id, email, password_hash, email_confirmed,
	confirmation_hash, confirmation_expires_at, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a         domain.Account
		hash      sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.EmailConfirmed,
		&hash,
		&expiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.ConfirmationHash = mapNullStringPtr(hash)
	a.ConfirmationExpiresAt = mapNullTimePtr(expiresAt)
	a.CreatedAt, a.UpdatedAt = a.CreatedAt.UTC(), a.UpdatedAt.UTC()
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		strings.ToLower(a.Email),
		a.PasswordHash,
		a.EmailConfirmed,
		mapOptionalString(a.ConfirmationHash),
		mapOptionalTime(a.ConfirmationExpiresAt),
		ts,
		ts,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, strings.ToLower(email)))
}

func (r *accountsRepo) GetAccountByConfirmationHash(ctx context.Context, hash string) (domain.Account, error) {
	return scanAccount(r.q.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE confirmation_hash = ? AND email_confirmed = 0`, hash))
}

func (r *accountsRepo) ConfirmAccount(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE accounts
		SET email_confirmed = 1,
		    confirmation_hash = NULL,
		    confirmation_expires_at = NULL,
		    updated_at = ?
		WHERE id = ?`, now(), id))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now(), id))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) DeleteExpiredUnconfirmed(ctx context.Context, at time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM accounts
		WHERE email_confirmed = 0
		  AND confirmation_expires_at IS NOT NULL
		  AND confirmation_expires_at < ?`, at.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

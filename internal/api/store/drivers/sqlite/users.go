package sqlite

import (
	"context"
	"database/sql"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
)

type usersRepo struct {
	q dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (
			id, email, display_name, first_name, last_name,
			avatar_url, is_premium, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		mapOptionalString(u.DisplayName),
		mapOptionalString(u.FirstName),
		mapOptionalString(u.LastName),
		mapOptionalString(u.AvatarURL),
		u.IsPremium,
		ts,
		ts,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var (
		u                             domain.User
		display, first, last, avatar sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, email, display_name, first_name, last_name,
		       avatar_url, is_premium, created_at, updated_at
		FROM users WHERE id = ?`, id).Scan(
		&u.ID,
		&u.Email,
		&display,
		&first,
		&last,
		&avatar,
		&u.IsPremium,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.DisplayName = mapNullStringPtr(display)
	u.FirstName = mapNullStringPtr(first)
	u.LastName = mapNullStringPtr(last)
	u.AvatarURL = mapNullStringPtr(avatar)
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) error {
	// COALESCE keeps the stored value for every field left nil.
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE users
		SET display_name = COALESCE(?, display_name),
		    first_name   = COALESCE(?, first_name),
		    last_name    = COALESCE(?, last_name),
		    updated_at   = ?
		WHERE id = ?`,
		mapOptionalString(p.DisplayName),
		mapOptionalString(p.FirstName),
		mapOptionalString(p.LastName),
		now(),
		id,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
)

type recordsRepo struct {
	q dbtx
}

const recordColumns = `id, user_id, recipe_id, cooked_at, rating, memo,
	user_image_url, created_at, updated_at`

// sortColumns whitelists the ORDER BY targets.
var sortColumns = map[domain.RecordSort]string{
	domain.SortCookedAt:  "cooked_at",
	domain.SortCreatedAt: "created_at",
}

func scanRecord(row interface{ Scan(...any) error }) (domain.Record, error) {
	var (
		rec    domain.Record
		rating sql.NullInt64
		memo   sql.NullString
		image  sql.NullString
	)
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.RecipeID,
		&rec.CookedAt,
		&rating,
		&memo,
		&image,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return domain.Record{}, mapNotFound(err)
	}
	rec.Rating = mapNullIntPtr(rating)
	rec.Memo = mapNullStringPtr(memo)
	rec.UserImageURL = mapNullStringPtr(image)
	rec.CookedAt = rec.CookedAt.UTC()
	rec.CreatedAt, rec.UpdatedAt = rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()
	return rec, nil
}

func (r *recordsRepo) CreateRecord(ctx context.Context, rec domain.Record) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.UserID,
		rec.RecipeID,
		rec.CookedAt.UTC(),
		mapOptionalInt(rec.Rating),
		mapOptionalString(rec.Memo),
		mapOptionalString(rec.UserImageURL),
		ts,
		ts,
	)
	return mapConstraint(err)
}

func (r *recordsRepo) GetRecordByID(ctx context.Context, id string) (domain.Record, error) {
	return scanRecord(r.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ?`, id))
}

func (r *recordsRepo) ListRecords(ctx context.Context, q domain.RecordQuery) ([]domain.Record, int, error) {
	where := `WHERE user_id = ?`
	args := []any{q.UserID}
	if q.RecipeID != "" {
		where += ` AND recipe_id = ?`
		args = append(args, q.RecipeID)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM records `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[domain.SortCookedAt]
	}
	order := "ASC"
	if q.Desc {
		order = "DESC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultRecordLimit
	}

	query := fmt.Sprintf(`SELECT %s FROM records %s ORDER BY %s %s, id %s LIMIT ? OFFSET ?`,
		recordColumns, where, column, order, order)
	rows, err := r.q.QueryContext(ctx, query, append(args, limit, max(q.Offset, 0))...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *recordsRepo) DeleteRecord(ctx context.Context, id string) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id))
}

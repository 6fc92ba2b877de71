package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/pkg/idx"
)

// RecordService manages cooking records. Every operation is scoped to the
// calling user.
type RecordService struct {
	Store store.Store

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

type CreateRecordInput struct {
	RecipeID     string
	CookedAt     *time.Time
	Rating       *int
	Memo         *string
	UserImageURL *string
}

func (s *RecordService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *RecordService) Create(ctx context.Context, userID string, in CreateRecordInput) (domain.Record, error) {
	recipeID := strings.TrimSpace(in.RecipeID)
	if recipeID == "" {
		return domain.Record{}, invalid("recipeId", "is required")
	}
	if len(recipeID) > MaxRecipeIDLength {
		return domain.Record{}, invalid("recipeId", "must be at most %d characters", MaxRecipeIDLength)
	}
	if in.Rating != nil && (*in.Rating < domain.MinRating || *in.Rating > domain.MaxRating) {
		return domain.Record{}, invalid("rating", "must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if in.Memo != nil && utf8.RuneCountInString(*in.Memo) > domain.MaxMemoLength {
		return domain.Record{}, invalid("memo", "must be at most %d characters", domain.MaxMemoLength)
	}
	if in.UserImageURL != nil {
		if err := validateHTTPURL("userImageUrl", *in.UserImageURL, domain.MaxImageURLLength); err != nil {
			return domain.Record{}, err
		}
	}

	now := s.now()
	rec := domain.Record{
		ID:           idx.NewAt(now).String(),
		UserID:       userID,
		RecipeID:     recipeID,
		CookedAt:     now,
		Rating:       in.Rating,
		Memo:         in.Memo,
		UserImageURL: in.UserImageURL,
	}
	if in.CookedAt != nil {
		rec.CookedAt = in.CookedAt.UTC()
	}

	if err := s.Store.Records().CreateRecord(ctx, rec); err != nil {
		return domain.Record{}, fmt.Errorf("create record: %w", err)
	}
	return s.Store.Records().GetRecordByID(ctx, rec.ID)
}

// List returns one page of the caller's records and the total count.
func (s *RecordService) List(ctx context.Context, q domain.RecordQuery) ([]domain.Record, int, error) {
	switch {
	case q.Limit == 0:
		q.Limit = domain.DefaultRecordLimit
	case q.Limit < 0 || q.Limit > domain.MaxRecordLimit:
		return nil, 0, invalid("limit", "must be between 1 and %d", domain.MaxRecordLimit)
	}
	if q.Offset < 0 {
		return nil, 0, invalid("offset", "must not be negative")
	}
	switch q.SortBy {
	case "":
		q.SortBy = domain.SortCookedAt
	case domain.SortCookedAt, domain.SortCreatedAt:
	default:
		return nil, 0, invalid("sortBy", "must be %s or %s", domain.SortCookedAt, domain.SortCreatedAt)
	}
	return s.Store.Records().ListRecords(ctx, q)
}

// Get returns a record the caller owns.
func (s *RecordService) Get(ctx context.Context, userID, id string) (domain.Record, error) {
	rec, err := s.Store.Records().GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Record{}, ErrNotFound
		}
		return domain.Record{}, err
	}
	if rec.UserID != userID {
		return domain.Record{}, ErrForbidden
	}
	return rec, nil
}

func (s *RecordService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.Store.Records().DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

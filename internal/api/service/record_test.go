package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/stretchr/testify/require"
)

func newRecordService(t *testing.T) *service.RecordService {
	t.Helper()
	s := newStore(t)
	seedUser(t, s, "owner", "a@x.com")
	seedUser(t, s, "other", "b@x.com")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &service.RecordService{Store: s, Now: func() time.Time { return now }}
}

func TestCreateRecordValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    service.CreateRecordInput
		field string
	}{
		{"missing recipe", service.CreateRecordInput{RecipeID: "  "}, "recipeId"},
		{"rating too low", service.CreateRecordInput{RecipeID: "1", Rating: ptr(0)}, "rating"},
		{"rating too high", service.CreateRecordInput{RecipeID: "1", Rating: ptr(6)}, "rating"},
		{"memo too long", service.CreateRecordInput{RecipeID: "1", Memo: ptr(strings.Repeat("あ", 1001))}, "memo"},
		{"image not a url", service.CreateRecordInput{RecipeID: "1", UserImageURL: ptr("not a url")}, "userImageUrl"},
		{"image wrong scheme", service.CreateRecordInput{RecipeID: "1", UserImageURL: ptr("ftp://x.com/a.png")}, "userImageUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newRecordService(t)

			_, err := svc.Create(context.Background(), "owner", tt.in)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateRecord(t *testing.T) {
	t.Parallel()
	svc := newRecordService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "owner", service.CreateRecordInput{
		RecipeID:     "42",
		Rating:       ptr(5),
		Memo:         ptr(strings.Repeat("あ", 1000)),
		UserImageURL: ptr("https://img.example.com/a.png"),
	})
	require.NoError(t, err)
	require.Equal(t, "owner", rec.UserID)
	require.Equal(t, 5, *rec.Rating)
	require.True(t, svc.Now().Equal(rec.CookedAt), "cookedAt defaults to now")

	cooked := time.Date(2025, 5, 1, 18, 30, 0, 0, time.FixedZone("JST", 9*3600))
	rec, err = svc.Create(ctx, "owner", service.CreateRecordInput{RecipeID: "42", CookedAt: &cooked})
	require.NoError(t, err)
	require.True(t, cooked.Equal(rec.CookedAt))
}

func TestRecordOwnership(t *testing.T) {
	t.Parallel()
	svc := newRecordService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "owner", service.CreateRecordInput{RecipeID: "1"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "other", rec.ID)
	require.ErrorIs(t, err, service.ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, "other", rec.ID), service.ErrForbidden)

	_, err = svc.Get(ctx, "owner", "missing")
	require.ErrorIs(t, err, service.ErrNotFound)

	got, err := svc.Get(ctx, "owner", rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, "owner", rec.ID))
	require.ErrorIs(t, svc.Delete(ctx, "owner", rec.ID), service.ErrNotFound)
}

func TestListRecordsQuery(t *testing.T) {
	t.Parallel()
	svc := newRecordService(t)
	ctx := context.Background()

	for range 3 {
		_, err := svc.Create(ctx, "owner", service.CreateRecordInput{RecipeID: "1"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "other", service.CreateRecordInput{RecipeID: "1"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     domain.RecordQuery
		wantLen   int
		wantField string
	}{
		{"defaults", domain.RecordQuery{UserID: "owner"}, 3, ""},
		{"limit", domain.RecordQuery{UserID: "owner", Limit: 2}, 2, ""},
		{"limit too large", domain.RecordQuery{UserID: "owner", Limit: 101}, 0, "limit"},
		{"negative offset", domain.RecordQuery{UserID: "owner", Offset: -1}, 0, "offset"},
		{"unknown sort", domain.RecordQuery{UserID: "owner", SortBy: "rating"}, 0, "sortBy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := svc.List(ctx, tt.query)
			if tt.wantField != "" {
				var verr *service.ValidationError
				require.ErrorAs(t, err, &verr)
				require.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			require.Equal(t, 3, total)
		})
	}
}

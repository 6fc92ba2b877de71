package domain

import "time"

// Limits enforced on cooking records.
const (
	MinRating          = 1
	MaxRating          = 5
	MaxMemoLength      = 1000
	MaxImageURLLength  = 255
	DefaultRecordLimit = 20
	MaxRecordLimit     = 100
)

// Record is one cooking record.
type Record struct {
	ID           string
	UserID       string
	RecipeID     string
	CookedAt     time.Time
	Rating       *int
	Memo         *string
	UserImageURL *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecordSort names the column records are ordered by.
type RecordSort string

const (
	SortCookedAt  RecordSort = "cookedAt"
	SortCreatedAt RecordSort = "createdAt"
)

// RecordQuery filters and pages a user's records.
type RecordQuery struct {
	UserID   string
	RecipeID string // optional
	Limit    int
	Offset   int
	SortBy   RecordSort
	Desc     bool
}

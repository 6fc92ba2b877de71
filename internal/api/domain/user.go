package domain

import "time"

// User is the profile row keyed by the account's subject id.
type User struct {
	ID          string
	Email       string
	DisplayName *string
	FirstName   *string
	LastName    *string
	AvatarURL   *string
	IsPremium   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileUpdate carries the optional fields of a profile patch. Nil fields
// are left as they are.
type ProfileUpdate struct {
	DisplayName *string
	FirstName   *string
	LastName    *string
}

// Empty reports whether the update touches nothing.
func (p ProfileUpdate) Empty() bool {
	return p.DisplayName == nil && p.FirstName == nil && p.LastName == nil
}


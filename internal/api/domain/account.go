package domain

import "time"

// Account is the identity provider's record: credentials and the email
// confirmation state. Profile data lives in User.
type Account struct {
	ID             string
	Email          string // lower-cased
	PasswordHash   string // argon2id PHC string
	EmailConfirmed bool

	// ConfirmationHash is the fingerprint of the emailed confirmation token.
	// Both fields are cleared once the email is confirmed.
	ConfirmationHash      *string
	ConfirmationExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

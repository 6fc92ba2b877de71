package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Both can be overridden through Config.
const (
	// DefaultAccessTokenTTL is the lifetime of the access cookie's token.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of the refresh cookie's token.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Kind tells access and refresh credentials apart. Both are signed the same
// way so the kind travels inside the token.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

func (k Kind) Valid() bool {
	return k == KindAccess || k == KindRefresh
}

// Claims carried by every credential.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Kind  Kind   `json:"typ"`
}

// NewClaims builds the claims for a fresh credential. Every call gets a new
// jti so two tokens minted in the same second never collide.
func NewClaims(subject, email string, kind Kind, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
		Kind:  kind,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateKind rejects a credential of the wrong kind, e.g. a refresh token
// presented where an access token is expected.
func (c *Claims) ValidateKind(want Kind) error {
	if c.Kind != want {
		return ErrWrongKind
	}
	return nil
}

// ValidateExpiry ensures the token has not expired and is already valid at now.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

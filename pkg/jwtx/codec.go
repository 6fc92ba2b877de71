package jwtx

import (
	"crypto/hmac"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret NewCodec accepts, in bytes.
const MinSecretLength = 32

// Config for a Codec. Secret is mandatory; every other field has a default.
type Config struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Leeway tolerates small clock skew on exp/nbf.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Codec signs and verifies HS256 credentials with one shared secret.
type Codec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrSecretMissing
	}
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrSecretTooShort, MinSecretLength, len(cfg.Secret))
	}

	c := &Codec{
		secret:     append([]byte(nil), cfg.Secret...),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		leeway:     cfg.Leeway,
		now:        cfg.Now,
	}
	if c.accessTTL <= 0 {
		c.accessTTL = DefaultAccessTokenTTL
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = DefaultRefreshTokenTTL
	}
	if c.now == nil {
		c.now = time.Now
	}

	// Time based checks run in Verify against the injected clock.
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	return c, nil
}

// TTL returns the lifetime used for credentials of kind k.
func (c *Codec) TTL(k Kind) time.Duration {
	if k == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a new credential of kind k for the given subject.
func (c *Codec) Issue(subject, email string, k Kind) (string, error) {
	if subject == "" || !k.Valid() {
		return "", ErrInvalidClaim
	}

	claims := NewClaims(subject, email, k, c.TTL(k), c.issuer, c.now().UTC())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and only then looks at the claims, so a
// tampered token always reports ErrInvalidSig. A token that is not three
// dot separated segments is ErrMalformed.
func (c *Codec) Verify(token string, want Kind) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Claims{}, ErrMalformed
	}

	if err := c.checkSignature(parts); err != nil {
		return Claims{}, err
	}

	var claims Claims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateExpiry(c.now().UTC(), c.leeway); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}
	if err := claims.ValidateKind(want); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// checkSignature compares the encoded signature segment against the one we
// would produce. Comparing the encoded form also catches edits to the unused
// low bits of the last base64 character.
func (c *Codec) checkSignature(parts []string) error {
	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ErrInvalidSig
	}
	var h struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(header, &h); err != nil || h.Alg != jwt.SigningMethodHS256.Alg() {
		return ErrInvalidSig
	}

	sig, err := jwt.SigningMethodHS256.Sign(parts[0]+"."+parts[1], c.secret)
	if err != nil {
		return fmt.Errorf("jwtx: sign: %w", err)
	}
	want := base64.RawURLEncoding.EncodeToString(sig)
	if !hmac.Equal([]byte(want), []byte(parts[2])) {
		return ErrInvalidSig
	}
	return nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}

// Package csrf implements double-submit cookie protection: a readable
// csrfToken cookie whose value the client echoes in the X-CSRF-Token
// header on every mutating request.
package csrf

import (
	"errors"
	"net/http"
	"time"

	"github.com/so-ota-biz/fridge-chef/pkg/cryptox"
)

const (
	CookieName = "csrfToken"
	HeaderName = "X-CSRF-Token"

	// ErrorCode is written in the body of every 403 produced here.
	ErrorCode = "csrf_forbidden"

	DefaultTTL = 24 * time.Hour
)

var (
	ErrMissingToken = errors.New("csrf: token missing")
	ErrMismatch     = errors.New("csrf: token mismatch")
)

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	return cryptox.GenerateHexToken(cryptox.TokenSize256)
}

// Extract returns the cookie and header values of r. Either may be empty.
func Extract(r *http.Request) (cookie, header string) {
	if c, err := r.Cookie(CookieName); err == nil {
		cookie = c.Value
	}
	return cookie, r.Header.Get(HeaderName)
}

// Validate passes only when both the cookie and the header are present and
// byte-equal.
func Validate(r *http.Request) error {
	cookie, header := Extract(r)
	if cookie == "" || header == "" {
		return ErrMissingToken
	}
	if !cryptox.EqualTokens(cookie, header) {
		return ErrMismatch
	}
	return nil
}

// IsSafeMethod reports whether method never needs a token.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/pkg/cookiex"
	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
)

// Cookies writes the three session cookies with one policy.
type Cookies struct {
	Policy *cookiex.Policy

	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
	CSRFMaxAge    time.Duration
}

// SetSession sets both credentials and a fresh CSRF token.
func (c *Cookies) SetSession(w http.ResponseWriter, s service.Session) error {
	c.Policy.Set(w, cookiex.AccessToken, s.AccessToken, c.AccessMaxAge, true)
	c.Policy.Set(w, cookiex.RefreshToken, s.RefreshToken, c.RefreshMaxAge, true)
	return c.SetCSRF(w)
}

// SetCSRF mints a CSRF token into a cookie the page can read.
func (c *Cookies) SetCSRF(w http.ResponseWriter) error {
	token, err := csrf.NewToken()
	if err != nil {
		return fmt.Errorf("mint csrf token: %w", err)
	}
	c.Policy.Set(w, csrf.CookieName, token, c.CSRFMaxAge, false)
	return nil
}

// Clear expires all three cookies with the attributes they were set with.
func (c *Cookies) Clear(w http.ResponseWriter) {
	c.Policy.Clear(w, cookiex.AccessToken, true)
	c.Policy.Clear(w, cookiex.RefreshToken, true)
	c.Policy.Clear(w, csrf.CookieName, false)
}

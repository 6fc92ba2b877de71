// Package cookiex resolves the transport attributes of every cookie the
// service sets and makes sure cookies are cleared with the same attributes
// they were set with.
package cookiex

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Names of the credential cookies. Both are always httpOnly.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// Config is read once from the environment.
type Config struct {
	Secure     bool   // COOKIE_SECURE=true
	SameSite   string // strict, lax or none; anything else falls back to lax
	Domain     string // optional, passed through verbatim
	Production bool   // production always implies Secure
}

// Options is the resolved attribute set for one cookie.
type Options struct {
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string
	Path     string
	MaxAge   time.Duration
}

// Policy turns Config into per-cookie Options.
type Policy struct {
	secure   bool
	sameSite http.SameSite
	domain   string
}

// NewPolicy normalizes cfg. Unknown SameSite values and SameSite=None
// without Secure are corrected with a warning, never rejected.
func NewPolicy(cfg Config, logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Policy{
		secure: cfg.Secure || cfg.Production,
		domain: cfg.Domain,
	}

	sameSite, ok := ParseSameSite(cfg.SameSite)
	if !ok {
		logger.Warn("unrecognized cookie samesite value, falling back to lax", "value", cfg.SameSite)
	}
	p.sameSite = sameSite

	if p.sameSite == http.SameSiteNoneMode && !p.secure {
		logger.Warn("cookie samesite=none requires secure, forcing secure=true")
		p.secure = true
	}

	return p
}

// ParseSameSite maps a case-insensitive name onto http.SameSite. The second
// result is false when s was empty or unknown and lax was chosen for it.
func ParseSameSite(s string) (http.SameSite, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode, true
	case "none":
		return http.SameSiteNoneMode, true
	case "lax":
		return http.SameSiteLaxMode, true
	default:
		return http.SameSiteLaxMode, false
	}
}

func (p *Policy) Secure() bool            { return p.secure }
func (p *Policy) SameSite() http.SameSite { return p.sameSite }
func (p *Policy) Domain() string          { return p.domain }

// Options returns the attributes for a cookie living maxAge.
func (p *Policy) Options(maxAge time.Duration, httpOnly bool) Options {
	return Options{
		HttpOnly: httpOnly,
		Secure:   p.secure,
		SameSite: p.sameSite,
		Domain:   p.domain,
		Path:     "/",
		MaxAge:   maxAge,
	}
}

// Cookie builds the http.Cookie for name=value. A non-positive MaxAge
// produces a deletion cookie (Max-Age=0 on the wire).
func (o Options) Cookie(name, value string) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}

	if o.MaxAge <= 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}

	c.MaxAge = max(int(o.MaxAge/time.Second), 1)
	return c
}

// Set writes name=value with the policy's attributes.
func (p *Policy) Set(w http.ResponseWriter, name, value string, maxAge time.Duration, httpOnly bool) {
	http.SetCookie(w, p.Options(maxAge, httpOnly).Cookie(name, value))
}

// Clear expires name using the same attributes Set used for it. Browsers
// ignore a deletion whose path, domain or samesite differ from the original.
func (p *Policy) Clear(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, p.Options(0, httpOnly).Cookie(name, ""))
}

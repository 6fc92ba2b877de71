package authsdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"golang.org/x/net/publicsuffix"
)

// Client talks to the fridge-chef API with a cookie session.
// All calls go through a Transport, so expired access tokens and lost CSRF
// cookies are recovered transparently.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	base      *url.URL
	jar       http.CookieJar
	transport *Transport
}

// NewClient creates a client for baseURL. base is the underlying transport
// (http.DefaultTransport when nil).
func NewClient(baseURL string, base http.RoundTripper) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := NewTransport(u, jar, base)
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   10 * time.Second,
		},
		base:      u,
		jar:       jar,
		transport: transport,
	}, nil
}

// Transport returns the interceptor used by c.
func (c *Client) Transport() *Transport {
	return c.transport
}

// Cookie returns the value of the named cookie held for the API, if any.
func (c *Client) Cookie(name string) (string, bool) {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

// HasCSRFToken reports whether the jar holds a csrfToken cookie.
func (c *Client) HasCSRFToken() bool {
	_, ok := c.Cookie(csrf.CookieName)
	return ok
}

// DropCookie removes the named cookie from the jar, the same way a browser
// would once it expires.
func (c *Client) DropCookie(name string) {
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:    name,
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}})
}

package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"golang.org/x/sync/singleflight"
)

// Endpoint paths relative to the service base URL.
const (
	PathSignUp  = "/auth/signup"
	PathSignIn  = "/auth/signin"
	PathRefresh = "/auth/refresh"
	PathLogout  = "/auth/logout"
	PathCSRF    = "/auth/csrf"
	PathMe      = "/auth/me"
	PathConfirm = "/auth/confirm"
)

// maxAttempts bounds how many times one call reaches the server.
const maxAttempts = 2

// Transport is an http.RoundTripper that keeps a cookie session alive.
//
// Before sending it attaches the jar's cookies and, on mutating requests,
// echoes the csrfToken cookie in the X-CSRF-Token header. After receiving a
// 401 it refreshes the session once and replays the request; after a 403
// csrf_forbidden it reacquires a CSRF token and replays. A call is never
// sent more than twice. When recovery fails, listeners registered with
// OnSessionExpired are notified.
//
// Transport owns the jar: the http.Client using it must not set its own Jar.
type Transport struct {
	Base    http.RoundTripper
	Jar     http.CookieJar
	BaseURL *url.URL

	refreshes singleflight.Group

	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(baseURL *url.URL, jar http.CookieJar, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		Base:      base,
		Jar:       jar,
		BaseURL:   baseURL,
		listeners: make(map[int]func()),
	}
}

// OnSessionExpired registers fn to run whenever recovery gives up. The
// returned func removes it.
func (t *Transport) OnSessionExpired(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

func (t *Transport) broadcastSessionExpired() {
	t.mu.Lock()
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	orig, err := replayable(req)
	if err != nil {
		return nil, err
	}
	return t.roundTrip(orig, 0)
}

// roundTrip sends orig as attempt number attempt (0 based).
func (t *Transport) roundTrip(orig *http.Request, attempt int) (*http.Response, error) {
	ctx := orig.Context()

	req, err := t.prepare(orig)
	if err != nil {
		return nil, err
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.storeCookies(req.URL, resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if t.isPath(orig, PathSignIn) || t.isPath(orig, PathRefresh) {
			return resp, nil
		}
		// A rejected password says nothing about the session.
		if code, err := peekCode(resp); err == nil && code == CodeInvalidCredentials {
			return resp, nil
		}
		if attempt+1 >= maxAttempts {
			t.broadcastSessionExpired()
			return resp, nil
		}
		if err := t.refresh(ctx); err != nil {
			t.broadcastSessionExpired()
			return resp, nil
		}
		drain(resp)
		return t.roundTrip(orig, attempt+1)

	case http.StatusForbidden:
		if !needsCSRF(orig.Method) || t.isPath(orig, PathSignIn) || t.isPath(orig, PathSignUp) {
			return resp, nil
		}
		code, err := peekCode(resp)
		if err != nil || code != CodeCSRFForbidden {
			return resp, nil
		}
		if attempt+1 >= maxAttempts {
			t.broadcastSessionExpired()
			return resp, nil
		}
		if err := t.fetchCSRF(ctx); err != nil {
			t.broadcastSessionExpired()
			return resp, nil
		}
		drain(resp)
		return t.roundTrip(orig, attempt+1)
	}

	return resp, nil
}

// refresh rotates the session cookies. Concurrent callers share one call.
func (t *Transport) refresh(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	_, err, _ := t.refreshes.Do("refresh", func() (any, error) {
		err := t.send(ctx, http.MethodPost, PathRefresh)
		if HasCode(err, CodeCSRFForbidden) {
			if err := t.fetchCSRF(ctx); err != nil {
				return nil, err
			}
			err = t.send(ctx, http.MethodPost, PathRefresh)
		}
		return nil, err
	})
	return err
}

func (t *Transport) fetchCSRF(ctx context.Context) error {
	return t.send(ctx, http.MethodGet, PathCSRF)
}

// send performs a bodiless call on the base transport without any recovery.
func (t *Transport) send(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, t.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req, err = t.prepare(req)
	if err != nil {
		return err
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	t.storeCookies(req.URL, resp)

	body, _ := io.ReadAll(resp.Body)
	return parseErrorResponse(resp, body)
}

// prepare clones orig with a fresh body, the jar's current cookies and the
// CSRF header.
func (t *Transport) prepare(orig *http.Request) (*http.Request, error) {
	req := orig.Clone(orig.Context())
	if orig.GetBody != nil {
		body, err := orig.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		req.Body = body
	}

	req.Header.Del("Cookie")
	if t.Jar != nil {
		for _, c := range t.Jar.Cookies(req.URL) {
			req.AddCookie(c)
		}
	}

	req.Header.Del(csrf.HeaderName)
	if needsCSRF(req.Method) && !t.isPath(req, PathSignIn) && !t.isPath(req, PathSignUp) {
		if tok := t.csrfToken(req.URL); tok != "" {
			req.Header.Set(csrf.HeaderName, tok)
		}
	}
	return req, nil
}

func (t *Transport) storeCookies(u *url.URL, resp *http.Response) {
	if t.Jar == nil {
		return
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		t.Jar.SetCookies(u, cookies)
	}
}

func (t *Transport) csrfToken(u *url.URL) string {
	if t.Jar == nil {
		return ""
	}
	for _, c := range t.Jar.Cookies(u) {
		if c.Name == csrf.CookieName {
			return c.Value
		}
	}
	return ""
}

func (t *Transport) endpoint(path string) string {
	return strings.TrimSuffix(t.BaseURL.String(), "/") + path
}

// isPath matches req against an endpoint path exactly, ignoring one
// trailing slash.
func (t *Transport) isPath(req *http.Request, path string) bool {
	want := strings.TrimSuffix(t.BaseURL.Path, "/") + path
	got := req.URL.Path
	if len(got) > 1 {
		got = strings.TrimSuffix(got, "/")
	}
	return got == want
}

func needsCSRF(method string) bool {
	return !csrf.IsSafeMethod(method)
}

// replayable returns a copy of req whose body can be read once per attempt.
func replayable(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	if req.GetBody != nil {
		// Every attempt reads a fresh copy from GetBody.
		_ = req.Body.Close()
		return req, nil
	}

	buf, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to buffer request body: %w", err)
	}

	clone := req.Clone(req.Context())
	clone.Body = io.NopCloser(bytes.NewReader(buf))
	clone.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	return clone, nil
}

// peekCode reads the error code from resp and puts the body back.
func peekCode(resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return "", err
	}
	return apiErr.Code, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

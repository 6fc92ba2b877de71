package authsdk_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// fakeAPI imitates the cookie contract of the real server closely enough
// to drive the transport through every recovery path.
type fakeAPI struct {
	mu        sync.Mutex
	access    string
	gen       int
	refreshOK bool
	counts    map[string]int
	bodies    []string

	// refreshGate, when set, is waited on before a refresh is answered.
	refreshGate func()
	// unauthorized is signalled every time /auth/me answers 401.
	unauthorized chan struct{}
	// rejectAll makes /auth/me answer 401 even for fresh cookies.
	rejectAll bool
}

func (f *fakeAPI) configure(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *authsdk.Client) {
	t.Helper()

	f := &fakeAPI{refreshOK: true, counts: make(map[string]int)}
	srv := httptest.NewServer(f.routes())
	t.Cleanup(srv.Close)

	client, err := authsdk.NewClient(srv.URL, srv.Client().Transport)
	require.NoError(t, err)
	return f, client
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[route]
}

func (f *fakeAPI) hit(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[route]++
}

// expireAccess makes every access cookie held by clients stale.
func (f *fakeAPI) expireAccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = "never-issued"
}

func (f *fakeAPI) recordBodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies...)
}

func (f *fakeAPI) rotate(w http.ResponseWriter) {
	f.mu.Lock()
	f.gen++
	f.access = fmt.Sprintf("acc-%d", f.gen)
	access, refresh := f.access, fmt.Sprintf("ref-%d", f.gen)
	f.mu.Unlock()

	setCookie(w, "accessToken", access)
	setCookie(w, "refreshToken", refresh)
	f.issueCSRF(w)
}

func (f *fakeAPI) issueCSRF(w http.ResponseWriter) {
	tok, _ := csrf.NewToken()
	setCookie(w, csrf.CookieName, tok)
}

func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: value, Path: "/", MaxAge: 3600})
}

func (f *fakeAPI) authenticated(r *http.Request) bool {
	c, err := r.Cookie("accessToken")
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return c.Value == f.access
}

func (f *fakeAPI) routes() http.Handler {
	mux := http.NewServeMux()
	user := authsdk.User{ID: "u1", Email: "a@x.com"}

	mux.HandleFunc("POST /auth/signin", func(w http.ResponseWriter, r *http.Request) {
		f.hit("signin")
		var req authsdk.SignInRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil || req.Password != "Aa123456" {
			authsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		f.rotate(w)
		httpx.WriteJSON(w, http.StatusOK, authsdk.SignInResponse{User: user})
	})

	mux.Handle("POST /auth/refresh", csrf.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hit("refresh")
		f.mu.Lock()
		gate, ok := f.refreshGate, f.refreshOK
		f.mu.Unlock()
		if gate != nil {
			gate()
		}
		if _, err := r.Cookie("refreshToken"); err != nil || !ok {
			authsdk.ErrUnauthenticated.WithMessage("refresh token is missing").WriteError(w)
			return
		}
		f.rotate(w)
		httpx.WriteJSON(w, http.StatusOK, authsdk.OKResponse{OK: true})
	})))

	mux.HandleFunc("GET /auth/csrf", func(w http.ResponseWriter, r *http.Request) {
		f.hit("csrf")
		f.issueCSRF(w)
		httpx.WriteJSON(w, http.StatusOK, authsdk.OKResponse{OK: true})
	})

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.hit("me")
		f.mu.Lock()
		signal, rejectAll := f.unauthorized, f.rejectAll
		f.mu.Unlock()
		if rejectAll || !f.authenticated(r) {
			authsdk.ErrUnauthenticated.WriteError(w)
			if signal != nil {
				signal <- struct{}{}
			}
			return
		}
		httpx.WriteJSON(w, http.StatusOK, user)
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.hit("logout")
		for _, name := range []string{"accessToken", "refreshToken", csrf.CookieName} {
			http.SetCookie(w, &http.Cookie{Name: name, Path: "/", MaxAge: -1, Expires: time.Unix(0, 0)})
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Handle("POST /records", csrf.Middleware(csrf.DefaultExemptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hit("records")
		if !f.authenticated(r) {
			authsdk.ErrUnauthenticated.WriteError(w)
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies = append(f.bodies, string(body))
		f.mu.Unlock()
		httpx.WriteJSON(w, http.StatusCreated, authsdk.Record{ID: "r1", UserID: user.ID, RecipeID: "42"})
	})))

	mux.HandleFunc("POST /users/me/password", func(w http.ResponseWriter, r *http.Request) {
		f.hit("password")
		authsdk.ErrInvalidCredentials.WriteError(w)
	})

	return mux
}

// readerOnly hides the concrete type so http.NewRequest cannot set GetBody.
func readerOnly(s string) io.Reader {
	return struct{ io.Reader }{strings.NewReader(s)}
}

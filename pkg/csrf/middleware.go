package csrf

import (
	"net/http"
	"strings"

	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

// Route identifies an exempt endpoint by method and exact path.
type Route struct {
	Method string
	Path   string
}

// Exemptions is the fixed set of routes that skip validation. It is built
// once when the router is constructed.
type Exemptions struct {
	routes map[Route]struct{}
}

// NewExemptions builds the table. Paths are stored without a trailing slash.
func NewExemptions(routes ...Route) Exemptions {
	ex := Exemptions{routes: make(map[Route]struct{}, len(routes))}
	for _, rt := range routes {
		ex.routes[Route{Method: strings.ToUpper(rt.Method), Path: trimSlash(rt.Path)}] = struct{}{}
	}
	return ex
}

// DefaultExemptions covers the endpoints a visitor without a session must
// be able to call: sign-in and sign-up.
func DefaultExemptions() Exemptions {
	return NewExemptions(
		Route{Method: http.MethodPost, Path: "/auth/signin"},
		Route{Method: http.MethodPost, Path: "/auth/signup"},
	)
}

// Exempt matches r.URL.Path exactly, tolerating one trailing slash.
func (e Exemptions) Exempt(r *http.Request) bool {
	_, ok := e.routes[Route{Method: r.Method, Path: trimSlash(r.URL.Path)}]
	return ok
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}

// Middleware validates every unsafe request that is not exempt.
func Middleware(ex Exemptions) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsSafeMethod(r.Method) || ex.Exempt(r) {
				next.ServeHTTP(w, r)
				return
			}
			if err := Validate(r); err != nil {
				reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard is the per-route form of Middleware. It validates regardless of
// method or exemptions.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := Validate(r); err != nil {
			reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reject(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Warn("csrf validation failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	httpx.WriteError(w, http.StatusForbidden, ErrorCode, "invalid csrf token")
}

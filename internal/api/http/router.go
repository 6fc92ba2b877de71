package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/pkg/cookiex"
	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"

	_ "github.com/so-ota-biz/fridge-chef/api/openapi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	cookies      *Cookies
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
	RecordService  *service.RecordService
}

func NewRouter(
	codec *jwtx.Codec,
	cookies *Cookies,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Every state-changing request passes the CSRF check except the
	// credential-less entry points in the exemption table.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		csrf.Middleware(csrf.DefaultExemptions()),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRecords()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			fridge-chef API
//	@version		0.1.0
//	@description	Session, profile and cooking record API of fridge-chef.
//	@description
//	@description				Credentials travel in httpOnly cookies (accessToken, refreshToken).
//	@description				Every POST, PUT, PATCH and DELETE except sign-in and sign-up must echo
//	@description				the csrfToken cookie in the X-CSRF-Token header.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						accessToken
//	@description				Access credential set by /auth/signin and /auth/refresh.
//
//	@securityDefinitions.apikey	CSRFToken
//	@in							header
//	@name						X-CSRF-Token
//	@description				Copy of the csrfToken cookie.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn requires a valid access cookie.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.codec, cookiex.AccessToken)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Sessions: r.SessionService, Cookies: r.cookies}

	// Sign-up and sign-in are keyed by IP and email to slow down guessing.
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// Refresh carries its own guard on top of the global middleware.
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
			csrf.Guard,
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/csrf",
		httpx.Chain(http.HandlerFunc(h.HandleCSRF),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /auth/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService, Cookies: r.cookies}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(limit))
	}

	r.Mux.Handle("GET /users/me", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /users/me", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /users/me", secured(h.HandleDelete, httpx.StrictLimit))

	// Password changes are guessable, keep them strict.
	r.Mux.Handle("POST /users/me/password", secured(h.HandleChangePassword, httpx.StrictLimit))
}

func (r *Router) registerRecords() {
	h := &RecordsHandler{Records: r.RecordService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.LenientLimit))
	}

	r.Mux.Handle("POST /records", secured(h.HandleCreate))
	r.Mux.Handle("GET /records", secured(h.HandleList))
	r.Mux.Handle("GET /records/{id}", secured(h.HandleGet))
	r.Mux.Handle("DELETE /records/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

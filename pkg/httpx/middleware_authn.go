package httpx

import (
	"errors"
	"net/http"

	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

// CodeUnauthenticated is the error code of every 401 written here.
const CodeUnauthenticated = "unauthenticated"

// TokenVerifier is satisfied by *jwtx.Codec.
type TokenVerifier interface {
	Verify(token string, kind jwtx.Kind) (jwtx.Claims, error)
}

// AuthnMiddleware requires a valid access credential in the named cookie and
// injects its claims into the request context.
func AuthnMiddleware(v TokenVerifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, CodeUnauthenticated, "access token is missing")
				return
			}

			claims, err := v.Verify(cookie.Value, jwtx.KindAccess)
			if err != nil {
				msg := "access token is invalid"
				if errors.Is(err, jwtx.ErrExpired) {
					msg = "access token expired"
				} else {
					log.Warn("access token rejected", "err", err)
				}
				WriteError(w, http.StatusUnauthorized, CodeUnauthenticated, msg)
				return
			}

			ctx = ContextWithClaims(ctx, claims)
			ctx = slogx.WithUserID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto API errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		authsdk.ErrValidation.WithMessage(verr.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailNotConfirmed):
		authsdk.ErrEmailNotConfirmed.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		authsdk.ErrUnauthenticated.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrConflict.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrValidation.WithMessage("confirmation token is invalid or expired").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		authsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrUpstream):
		log.Error("identity provider failure", "err", err)
		authsdk.ErrUpstreamUnavailable.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

// subject returns the authenticated user id injected by the authn middleware.
func subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
	}
	return userID, ok
}

package http

import (
	"errors"
	"net/http"

	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/cookiex"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

// signUpMessage tells the client what happens next.
const signUpMessage = "account created; check your email to confirm the address before signing in"

type AuthHandler struct {
	Sessions *service.SessionService
	Cookies  *Cookies
}

// HandleSignUp godoc
//
//	@Summary		Sign up
//	@Description	Creates an account and its profile. No cookies are set; the email has to be confirmed before signing in when confirmation is enabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.SignUpRequest	true	"email, password and optional names"
//	@Success		201		{object}	authsdk.SignUpResponse	"user, message"
//	@Failure		400		{object}	authsdk.APIError		"validation_failed"
//	@Failure		409		{object}	authsdk.APIError		"conflict"
//	@Failure		429		{object}	authsdk.APIError		"rate_limited"
//	@Failure		502		{object}	authsdk.APIError		"upstream_unavailable"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	user, err := h.Sessions.SignUp(r.Context(), service.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user signed up", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.SignUpResponse{
		User:    toUser(user),
		Message: signUpMessage,
	})
}

// HandleSignIn godoc
//
//	@Summary		Sign in
//	@Description	Verifies the credentials and sets the accessToken and refreshToken cookies (httpOnly) plus a fresh csrfToken cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.SignInRequest	true	"email, password"
//	@Success		200		{object}	authsdk.SignInResponse	"user"
//	@Failure		400		{object}	authsdk.APIError		"validation_failed"
//	@Failure		401		{object}	authsdk.APIError		"invalid_credentials or email_not_confirmed"
//	@Failure		429		{object}	authsdk.APIError		"rate_limited"
//	@Failure		502		{object}	authsdk.APIError		"upstream_unavailable"
//	@Router			/auth/signin [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignInRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	sess, err := h.Sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.Cookies.SetSession(w, sess); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.SignInResponse{User: toUser(sess.User)})
}

// HandleRefresh godoc
//
//	@Summary		Refresh the session
//	@Description	Verifies the refreshToken cookie and rotates all three cookies. Requires the CSRF header.
//	@Tags			Auth
//	@Security		CSRFToken
//	@Produce		json
//	@Success		200	{object}	authsdk.OKResponse	"ok"
//	@Failure		401	{object}	authsdk.APIError	"refresh token missing, invalid or expired"
//	@Failure		403	{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	cookie, err := r.Cookie(cookiex.RefreshToken)
	if err != nil || cookie.Value == "" {
		authsdk.ErrUnauthenticated.WithMessage("refresh token is missing").WriteError(w)
		return
	}

	sess, err := h.Sessions.Refresh(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			authsdk.ErrUnauthenticated.WithMessage("refresh token expired").WriteError(w)
		case errors.Is(err, service.ErrUnauthenticated):
			log.Warn("refresh rejected", "err", err)
			authsdk.ErrUnauthenticated.WithMessage("refresh token is invalid").WriteError(w)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	if err := h.Cookies.SetSession(w, sess); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.OKResponse{OK: true})
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Clears the three session cookies. Credentials already issued stay valid until they expire.
//	@Tags			Auth
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Success		204
//	@Failure		401	{object}	authsdk.APIError	"unauthenticated"
//	@Failure		403	{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCSRF godoc
//
//	@Summary		Issue a CSRF token
//	@Description	Sets a fresh csrfToken cookie. Clients call it on start-up and whenever the cookie is gone.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.OKResponse	"ok"
//	@Router			/auth/csrf [get].
func (h *AuthHandler) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	if err := h.Cookies.SetCSRF(w); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.OKResponse{OK: true})
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Returns the public projection of the signed-in user.
//	@Tags			Auth
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.User		"id, email, displayName, avatarUrl, isPremium"
//	@Failure		401	{object}	authsdk.APIError	"unauthenticated"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	user, err := h.Sessions.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleConfirm godoc
//
//	@Summary		Confirm an email address
//	@Description	Consumes the token sent after sign-up.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string				true	"confirmation token"
//	@Success		200		{object}	authsdk.OKResponse	"ok"
//	@Failure		400		{object}	authsdk.APIError	"validation_failed"
//	@Router			/auth/confirm [get].
func (h *AuthHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.ConfirmEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.OKResponse{OK: true})
}

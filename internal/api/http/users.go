package http

import (
	"net/http"

	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
	"github.com/so-ota-biz/fridge-chef/pkg/httpx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

type UsersHandler struct {
	Users   *service.UserService
	Cookies *Cookies
}

// HandleGet godoc
//
//	@Summary		Get profile
//	@Description	Returns the full profile of the signed-in user.
//	@Tags			Users
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Profile
//	@Failure		401	{object}	authsdk.APIError	"unauthenticated"
//	@Failure		404	{object}	authsdk.APIError	"not_found"
//	@Router			/users/me [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

// HandleUpdate godoc
//
//	@Summary		Update profile
//	@Description	Patches the names. Omitted fields are left as they are.
//	@Tags			Users
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.UpdateProfileRequest	true	"fields to change"
//	@Success		200		{object}	authsdk.Profile
//	@Failure		400		{object}	authsdk.APIError	"validation_failed"
//	@Failure		401		{object}	authsdk.APIError	"unauthenticated"
//	@Failure		403		{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/users/me [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req authsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password after checking the current one. Existing sessions stay valid.
//	@Tags			Users
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Accept			json
//	@Param			body	body	authsdk.ChangePasswordRequest	true	"current and new password"
//	@Success		204
//	@Failure		400	{object}	authsdk.APIError	"validation_failed"
//	@Failure		401	{object}	authsdk.APIError	"invalid_credentials"
//	@Failure		403	{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/users/me/password [post].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	if err := h.Users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("password changed", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete account
//	@Description	Deletes the account, its profile and every record, then clears the session cookies.
//	@Tags			Users
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Accept			json
//	@Param			body	body	authsdk.DeleteAccountRequest	true	"password"
//	@Success		204
//	@Failure		400	{object}	authsdk.APIError	"validation_failed"
//	@Failure		401	{object}	authsdk.APIError	"invalid_credentials"
//	@Failure		403	{object}	authsdk.APIError	"csrf_forbidden"
//	@Router			/users/me [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req authsdk.DeleteAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrValidation.WithMessage(err.Error()).WriteError(w)
		return
	}

	if err := h.Users.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("account deleted", "user_id", userID)
	h.Cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

package authsdk

import (
	"context"
	"net/http"
)

const (
	PathUsersMe       = "/users/me"
	PathUsersPassword = "/users/me/password"
)

// GetProfile returns the full profile of the signed-in user.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathUsersMe, nil)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the profile and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, PathUsersMe, req)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the password after checking the current one.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, PathUsersPassword, ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DeleteAccount removes the account and all of its records.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, PathUsersMe, DeleteAccountRequest{Password: password})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp registers an account. No session is started.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, PathSignUp, req)
	if err != nil {
		return nil, err
	}

	var out SignUpResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn starts a session. The credential and CSRF cookies land in the jar.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, PathSignIn, SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out SignInResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Refresh rotates the session cookies explicitly. The transport does this on
// its own when a call comes back 401.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, PathRefresh, nil)
	if err != nil {
		return err
	}

	var out OKResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Logout ends the session; the server clears all three cookies.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, PathLogout, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// FetchCSRF asks the server for a fresh csrfToken cookie.
func (c *Client) FetchCSRF(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, PathCSRF, nil)
	if err != nil {
		return err
	}

	var out OKResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathMe, nil)
	if err != nil {
		return nil, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmEmail redeems the token delivered after sign-up.
func (c *Client) ConfirmEmail(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, http.MethodGet, PathConfirm+"?token="+url.QueryEscape(token), nil)
	if err != nil {
		return err
	}

	var out OKResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

package api

import (
	"context"
	"fmt"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type lifestyleRequest struct {
	Lifestyles []string `json:"lifestyles"`
}

// Login exchanges credentials for an opaque access token. The token is
// returned to the caller; storing it is the session service's job.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.post(ctx, loginPath, nil, loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("api: login response carried no access token")
	}
	return resp.AccessToken, nil
}

// Signup registers a new account. It does not authenticate; the caller is
// expected to redirect to login on success.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	var user domain.User
	if err := c.post(ctx, "/users", nil, in, &user); err != nil {
		return nil, err
	}
	user.Normalize()
	return &user, nil
}

// CurrentUser fetches the authenticated user's profile. Works for both the
// bearer-token flow and the cookie session issued by the OAuth flow.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	user.Normalize()
	return &user, nil
}

// UpdateProfile applies a partial profile update. Returns the updated
// profile when the backend echoes one, nil otherwise.
func (c *Client) UpdateProfile(ctx context.Context, username string, in ports.ProfileUpdateInput) (*domain.User, error) {
	var user domain.User
	if err := c.put(ctx, "/users/"+username, in, &user); err != nil {
		return nil, err
	}
	if user.Username == "" {
		return nil, nil
	}
	user.Normalize()
	return &user, nil
}

type oauthCompleteRequest struct {
	Code string `json:"code"`
}

// CompleteOAuth exchanges the provider code server-side. The backend answers
// with a session cookie, which lands in the client's jar and rides on every
// subsequent request.
func (c *Client) CompleteOAuth(ctx context.Context, code string) error {
	return c.post(ctx, "/auth/oauth/complete", nil, oauthCompleteRequest{Code: code}, nil)
}

// Logout asks the backend to invalidate any cookie-based session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil, nil)
}

// SetLifestyles replaces the user's lifestyle selection. An empty slice
// clears it.
func (c *Client) SetLifestyles(ctx context.Context, lifestyles []string) error {
	if lifestyles == nil {
		lifestyles = []string{}
	}
	return c.post(ctx, "/user/lifestyle", nil, lifestyleRequest{Lifestyles: lifestyles}, nil)
}

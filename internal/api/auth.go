package api

import (
	"context"

	"traveline/local-app/internal/model"
)

// LoginResponse is the body of a successful login. The legacy endpoint
// returns only the token.
type LoginResponse struct {
	Token       string           `json:"token"`
	UserID      model.FlexString `json:"user_id"`
	Username    string           `json:"username"`
	IsStaff     bool             `json:"is_staff"`
	IsAdmin     bool             `json:"is_admin"`
	IsSuperuser bool             `json:"is_superuser"`
}

// Credentials converts the response into session credentials. typedUsername
// fills in the username when the server did not echo one back.
func (r LoginResponse) Credentials(typedUsername string) model.Credentials {
	username := r.Username
	if username == "" {
		username = typedUsername
	}
	return model.Credentials{
		Token:       r.Token,
		Username:    username,
		UserID:      string(r.UserID),
		IsAdmin:     r.IsStaff || r.IsAdmin || r.IsSuperuser,
		IsSuperuser: r.IsSuperuser,
	}
}

// Login exchanges a username and password for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout/", nil, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.Profile, error) {
	var resp struct {
		model.Profile
		User *model.Profile `json:"user"`
	}
	if err := c.post(ctx, "/users/", reg, &resp); err != nil {
		return nil, err
	}
	if resp.User != nil {
		return resp.User, nil
	}
	return &resp.Profile, nil
}

// ChangePassword replaces the current user's password.
func (c *Client) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	return c.post(ctx, "/auth/change-password/", change, nil)
}

// Profile returns the current user's account.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	if err := c.get(ctx, "/users/profile/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the non-empty fields of the current user's account.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	var resp struct {
		model.Profile
		User *model.Profile `json:"user"`
	}
	if err := c.patch(ctx, "/users/profile/", update, &resp); err != nil {
		return nil, err
	}
	if resp.User != nil {
		return resp.User, nil
	}
	return &resp.Profile, nil
}

// DeleteAccount permanently removes the current user's account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.delete(ctx, "/users/delete_account/")
}

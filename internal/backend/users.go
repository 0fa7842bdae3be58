package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Username     string `json:"username"`
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// Register creates a new user account. The backend checks that both
// password entries match and the username is free.
func (c *Client) Register(ctx context.Context, username, password, password2 string) Response {
	return c.do(ctx, http.MethodPost, "users/register", nil, registerRequest{
		Username:  username,
		Password:  password,
		Password2: password2,
	}, "failed to register user")
}

// Login authenticates and returns the session token alongside the
// normalized response. The token is empty on failure.
func (c *Client) Login(ctx context.Context, username, password string) (string, Response) {
	resp := c.do(ctx, http.MethodPost, "users/login", nil, loginRequest{
		Username: username,
		Password: password,
	}, "failed to log in")
	if !resp.OK() || resp.Data == nil {
		return "", resp
	}

	var data struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", resp
	}
	return data.SessionToken, resp
}

// ChangePassword rotates a user's password.
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword, newPassword2 string) Response {
	return c.do(ctx, http.MethodPost, "users/change-password", nil, changePasswordRequest{
		Username:     username,
		OldPassword:  oldPassword,
		NewPassword:  newPassword,
		NewPassword2: newPassword2,
	}, "failed to change password")
}

// GetUserInfo returns the authenticated user's identity.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, Response) {
	resp := c.do(ctx, http.MethodGet, "users/get-info", nil, nil,
		"failed to fetch user info")
	if !resp.OK() || resp.Data == nil {
		return nil, resp
	}

	var info UserInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, resp
	}
	return &info, resp
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// ErrBadCredentials is returned when the service rejects a login attempt.
var ErrBadCredentials = errors.New("invalid username or password")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changeRequest struct {
	NewUsername string `json:"newUsername"`
	NewPassword string `json:"newPassword"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	const op = "login"

	body, err := c.postJSON(ctx, op, c.base+"/auth/login", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		var pe *ProtocolError
		if errors.As(err, &pe) && (pe.Status == http.StatusUnauthorized || pe.Status == http.StatusForbidden) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &FormatError{Op: op, Err: err}
	}
	if resp.Token == "" {
		return "", &FormatError{Op: op, Err: errors.New("empty token in response")}
	}
	return resp.Token, nil
}

// ChangeCredentials replaces the account credentials. The current session
// token authenticates the call; on success the service invalidates existing
// tokens, so the caller must sign in again.
func (c *Client) ChangeCredentials(ctx context.Context, newUsername, newPassword string) error {
	_, err := c.postJSON(ctx, "change credentials", c.base+"/auth/change", changeRequest{
		NewUsername: newUsername,
		NewPassword: newPassword,
	})
	return err
}

func (c *Client) postJSON(ctx context.Context, op, u string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &FormatError{Op: op, Err: err}
	}
	return c.do(ctx, op, http.MethodPost, u, bytes.NewReader(data))
}

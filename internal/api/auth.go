package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/session"
)

// Login exchanges credentials for a token and starts a session with it.
func (c *Client) Login(ctx context.Context, username, password string) (domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", domain.Credentials{
		Username: strings.TrimSpace(username),
		Password: password,
	})
}

// Signup creates an account and starts a session for it.
func (c *Client) Signup(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/signup", creds)
}

// Register is Signup against the /auth/register route.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

// Logout drops the local session. The service keeps no server-side state.
func (c *Client) Logout(ctx context.Context) error {
	if c.auth == nil {
		return nil
	}
	return c.auth.End()
}

func (c *Client) authenticate(ctx context.Context, path string, creds domain.Credentials) (domain.AuthResult, error) {
	var res domain.AuthResult
	err := c.do(ctx, call{method: http.MethodPost, path: path, in: creds, out: &res, public: true})
	if err != nil {
		return domain.AuthResult{}, err
	}
	if res.Token == "" {
		return domain.AuthResult{}, &Error{Kind: ErrServer, Message: "response carried no token"}
	}
	if c.auth != nil {
		if err := c.auth.Begin(session.Session{Token: res.Token, User: res.User}); err != nil {
			return domain.AuthResult{}, fmt.Errorf("store session: %w", err)
		}
	}
	return res, nil
}

package remote

import (
	"context"
	"net/http"

	"planboard/internal/domain"
)

// GetSession returns the current session, or nil when signed out.
func (c *Client) GetSession(ctx context.Context) (*domain.Session, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	return session, nil
}

// OnSessionChange registers a callback fired on every sign-in, refresh and
// sign-out. A nil session means signed out.
func (c *Client) OnSessionChange(fn func(*domain.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// SignInWithPassword authenticates the fixed guest credential.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	var session domain.Session
	req := domain.GuestLoginRequest{Email: email, Password: password}
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/auth/guest", req, &session); err != nil {
		return nil, err
	}
	c.setSession(&session)
	return &session, nil
}

// SignInWithMagicLink asks the server to mail a sign-in link. The request
// succeeds silently; the session arrives later through VerifyMagicLink.
func (c *Client) SignInWithMagicLink(ctx context.Context, email, redirectTo string) error {
	req := domain.MagicLinkRequest{Email: email, RedirectTo: redirectTo}
	return c.call(ctx, http.MethodPost, apiPrefix+"/auth/magic-link", req, nil)
}

// RequestMagicLink is SignInWithMagicLink returning the server response,
// which outside production carries the link itself.
func (c *Client) RequestMagicLink(ctx context.Context, email, redirectTo string) (*domain.MagicLinkResponse, error) {
	var resp domain.MagicLinkResponse
	req := domain.MagicLinkRequest{Email: email, RedirectTo: redirectTo}
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/auth/magic-link", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyMagicLink exchanges a magic token for a session.
func (c *Client) VerifyMagicLink(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	req := domain.MagicLinkVerifyRequest{Token: token}
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/auth/verify", req, &session); err != nil {
		return nil, err
	}
	c.setSession(&session)
	return &session, nil
}

// RestoreSession installs a previously saved session, as when a CLI run
// picks up tokens persisted by an earlier login.
func (c *Client) RestoreSession(session *domain.Session) {
	c.setSession(session)
}

// CurrentUser resolves the signed-in user from the server.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.call(ctx, http.MethodGet, apiPrefix+"/auth/session", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut drops the local session. The server side is stateless.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, apiPrefix+"/auth/logout", nil, nil)
	c.setSession(nil)
	return err
}

// refreshSession exchanges the refresh token for a new access token,
// keeping the rest of the session intact.
func (c *Client) refreshSession(ctx context.Context) error {
	refresh := c.refreshTokenValue()
	if refresh == "" {
		return &APIError{Status: http.StatusUnauthorized, Message: "no refresh token"}
	}
	var tokens domain.TokenResponse
	req := domain.RefreshTokenRequest{RefreshToken: refresh}
	if err := c.call(ctx, http.MethodPost, apiPrefix+"/auth/refresh", req, &tokens); err != nil {
		return err
	}
	c.mu.Lock()
	session := c.session
	if session != nil {
		updated := *session
		updated.AccessToken = tokens.AccessToken
		updated.ExpiresIn = tokens.ExpiresIn
		c.session = &updated
		session = &updated
	}
	listeners := make([]func(*domain.Session), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(session)
	}
	return nil
}

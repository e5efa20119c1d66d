package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"planboard/internal/domain"
)

const apiPrefix = "/api/v1"

// Client talks to the planboard server over its REST API. It implements the
// store and dashboard gateway interfaces and keeps the session tokens,
// refreshing the access token once on a 401 before giving up.
type Client struct {
	http *resty.Client
	log  zerolog.Logger

	mu        sync.Mutex
	session   *domain.Session
	listeners []func(*domain.Session)
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	c := &Client{
		log: log.With().Str("component", "remote").Logger(),
	}
	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if token := c.accessToken(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
			return nil
		})
	return c
}

// BaseURL returns the server address the client was built for.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a 409, which the server uses for
// trash-state violations such as restoring a version under a trashed note.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusConflict
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// call performs one API request and decodes the envelope into out. A 401 on
// a non-auth path triggers a single token refresh and retry.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	err := c.callOnce(ctx, method, path, body, out)
	if apiErr, ok := err.(*APIError); ok &&
		apiErr.Status == http.StatusUnauthorized &&
		!strings.HasPrefix(path, apiPrefix+"/auth/") &&
		c.refreshTokenValue() != "" {
		if refreshErr := c.refreshSession(ctx); refreshErr != nil {
			c.log.Debug().Err(refreshErr).Msg("token refresh failed")
			c.setSession(nil)
			return err
		}
		return c.callOnce(ctx, method, path, body, out)
	}
	return err
}

func (c *Client) callOnce(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("remote: decoding %s %s: %w", method, path, err)
	}
	if resp.IsError() || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status()
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("remote: decoding %s %s payload: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

func (c *Client) refreshTokenValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.RefreshToken
}

func (c *Client) setSession(session *domain.Session) {
	c.mu.Lock()
	c.session = session
	listeners := make([]func(*domain.Session), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(session)
	}
}

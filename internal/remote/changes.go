package remote

import (
	"context"
	"net/url"
	"strings"
	"time"

	ws "github.com/gorilla/websocket"

	"planboard/internal/websocket"
)

// ChangeHandler receives change events pushed by the server for the signed
// in user's other devices.
type ChangeHandler func(websocket.ChangeEvent)

// ListenChanges connects to the server's change feed and dispatches events
// to fn until the context is canceled or the connection drops. Reconnecting
// is the caller's decision.
func (c *Client) ListenChanges(ctx context.Context, fn ChangeHandler) error {
	token := c.accessToken()
	if token == "" {
		return &APIError{Status: 401, Message: "not signed in"}
	}

	wsURL, err := changeFeedURL(c.http.BaseURL, token)
	if err != nil {
		return err
	}

	conn, _, err := ws.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Close the connection when the context ends so ReadJSON unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		switch msg.Type {
		case websocket.TypeChange:
			var ev websocket.ChangeEvent
			if err := msg.UnmarshalPayload(&ev); err != nil {
				c.log.Error().Err(err).Msg("bad change event payload")
				continue
			}
			fn(ev)
		case websocket.TypePing:
			pong, err := websocket.NewMessage(websocket.TypePong, nil)
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(pong); err != nil {
				return err
			}
		}
	}
}

func changeFeedURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

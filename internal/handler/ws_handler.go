package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"planboard/internal/websocket"
	"planboard/pkg/jwt"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	manager   *websocket.Manager
	jwtSecret string
	upgrader  ws.Upgrader
}

func NewWebSocketHandler(manager *websocket.Manager, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		manager:   manager,
		jwtSecret: jwtSecret,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}

	if token == "" {
		http.Error(w, "missing authorization token", http.StatusUnauthorized)
		return
	}

	claims, err := jwt.ValidateTokenType(token, h.jwtSecret, jwt.TypeAccess)
	if err != nil {
		log.Printf("websocket token validation failed: %v", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	client := websocket.NewClient(uuid.New().String(), claims.UserID, conn, h.manager)

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// ChangeFeedMessageHandler answers client pings; the feed itself is
// server-push only.
type ChangeFeedMessageHandler struct{}

func NewChangeFeedMessageHandler() *ChangeFeedMessageHandler {
	return &ChangeFeedMessageHandler{}
}

func (h *ChangeFeedMessageHandler) HandleWebSocketMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypePing:
		pongMsg, err := websocket.NewMessage(websocket.TypePong, nil)
		if err != nil {
			return err
		}

		pongBytes, _ := json.Marshal(pongMsg)
		client.Send <- pongBytes

	default:
		log.Printf("unknown message type: %s", msg.Type)
	}

	return nil
}

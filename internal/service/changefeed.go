package service

import (
	"encoding/json"
	"log"

	"planboard/internal/websocket"
)

// ChangeFeed pushes entity change events to the owning user's websocket
// connections. Failures are logged, never propagated: the mutation already
// happened and the client will converge on its next fetch.
type ChangeFeed struct {
	manager *websocket.Manager
}

func NewChangeFeed(manager *websocket.Manager) *ChangeFeed {
	return &ChangeFeed{manager: manager}
}

func (f *ChangeFeed) Broadcast(userID, entity, operation, id, parentID string, data interface{}) {
	if f == nil || f.manager == nil {
		return
	}

	var raw json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			log.Printf("change feed: failed to marshal %s payload: %v", entity, err)
			return
		}
		raw = bytes
	}

	msg, err := websocket.NewMessage(websocket.TypeChange, &websocket.ChangeEvent{
		Entity:    entity,
		Operation: operation,
		ID:        id,
		ParentID:  parentID,
		Data:      raw,
	})
	if err != nil {
		log.Printf("change feed: failed to build message: %v", err)
		return
	}

	if err := f.manager.BroadcastToUser(userID, msg); err != nil {
		log.Printf("change feed: broadcast failed: %v", err)
	}
}

package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeChange MessageType = "change"
	TypePing   MessageType = "ping"
	TypePong   MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Change operations mirrored to connected clients after every mutation.
const (
	OpInsert     = "insert"
	OpUpdate     = "update"
	OpSoftDelete = "soft_delete"
	OpRestore    = "restore"
	OpHardDelete = "hard_delete"
)

// ChangeEvent tells a client that one entity row changed remotely. Data
// carries the canonical row for insert/update/restore; it is empty for
// deletes.
type ChangeEvent struct {
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	ID        string          `json:"id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

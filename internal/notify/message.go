package notify

import (
	"encoding/json"
	"fmt"
)

type MessageType string

const (
	TypeRegister     MessageType = "register"
	TypeRegistered   MessageType = "registered"
	TypeNotification MessageType = "notification"
	TypeShutdown     MessageType = "shutdown"
	TypeError        MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

type WSMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RegisterPayload is what a connected client sends to announce its identity.
type RegisterPayload struct {
	UserID string `json:"user_id"`
}

type RegisteredPayload struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func marshalMessage(msgType MessageType, payload any) (*WSMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	return &WSMessage{Type: msgType, Payload: raw}, nil
}

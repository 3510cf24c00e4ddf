package websocket

import (
	"encoding/json"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// UnmarshalPayload decodes an envelope's data into a payload struct.
// Malformed payloads are logged and reported, never fatal.
func UnmarshalPayload(env Envelope, v interface{}) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		logger.Error("Malformed event payload", "type", env.Type, "error", err)
		return err
	}
	return nil
}

// TypingPayload signals that a user started or stopped typing in a chat
type TypingPayload struct {
	UserID   string `json:"userId"`
	ChatID   string `json:"chatId"`
	IsTyping bool   `json:"isTyping"`
}

// MessagePayload wraps a pushed direct message
type MessagePayload struct {
	Message api.DirectMessage `json:"message"`
}

// PresencePayload signals a friend going online or offline
type PresencePayload struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
	LastSeen *int64 `json:"lastSeen,omitempty"` // epoch ms
}

// StatusUpdatePayload carries a friend's profile status text change
type StatusUpdatePayload struct {
	UserID        string `json:"userId"`
	StatusMessage string `json:"statusMessage"`
}

package models

import (
	"encoding/json"
)

type SocketEvent struct {
	Event          string          `json:"event"`
	Payload        json.RawMessage `json:"payload"`
	ConversationID uint            `json:"conversation_id"`
}

type IsTypingPayload struct {
	UserID   uint `json:"user_id"`
	IsTyping bool `json:"is_typing"`
}

type SeenMessagePayload struct {
	SeenerID uint `json:"seener_id"`
}

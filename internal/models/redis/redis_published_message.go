package models

const REDIS_CHANNEL_CHAT = "rent_chat_channel"

type RedisPublishedMessage struct {
	Event          string `json:"event"`
	ConversationID uint   `json:"conversation_id"`
	Payload        any    `json:"payload"`
}

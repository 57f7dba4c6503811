package models

import (
	"gorm.io/gorm"
)

// Message content is stored in its masked form; the sender-side masking pass
// runs before the row is written.
type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint   `gorm:"not null" json:"sender_id"`
	ReceiverID     uint   `gorm:"not null;index" json:"receiver_id"`
	Content        string `gorm:"not null" json:"content"`
	Read           bool   `gorm:"not null;default:false" json:"read"`
}

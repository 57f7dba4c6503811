package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation links exactly one tenant and one landlord around a property.
// Property title, image and price are snapshots taken at creation time, not
// live-synced with the listing. At most one conversation exists per
// (property, tenant) pair, enforced by the composite unique index.
type Conversation struct {
	gorm.Model
	PropertyID    uint       `gorm:"not null;uniqueIndex:idx_conversations_property_tenant" json:"property_id"`
	PropertyTitle string     `gorm:"not null" json:"property_title"`
	PropertyImage string     `json:"property_image"`
	PropertyPrice float64    `json:"property_price"`
	TenantID      uint       `gorm:"not null;uniqueIndex:idx_conversations_property_tenant" json:"tenant_id"`
	TenantName    string     `json:"tenant_name"`
	TenantPhoto   *string    `json:"tenant_photo"`
	LandlordID    uint       `gorm:"not null;index" json:"landlord_id"`
	LandlordName  string     `json:"landlord_name"`
	LandlordPhoto *string    `json:"landlord_photo"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	UnreadCount   int        `gorm:"not null;default:0" json:"unread_count"`
}

func (conversation *Conversation) HasMember(userID uint) bool {
	return conversation.TenantID == userID || conversation.LandlordID == userID
}

// OtherParty returns the id of the opposite side of the conversation
// relative to userID. ok is false when userID is neither party.
func (conversation *Conversation) OtherParty(userID uint) (uint, bool) {
	switch userID {
	case conversation.TenantID:
		return conversation.LandlordID, true
	case conversation.LandlordID:
		return conversation.TenantID, true
	default:
		return 0, false
	}
}

func (conversation *Conversation) ToConversationResponse(unread int) ConversationResponse {
	return ConversationResponse{
		ID:            conversation.ID,
		PropertyID:    conversation.PropertyID,
		PropertyTitle: conversation.PropertyTitle,
		PropertyImage: conversation.PropertyImage,
		PropertyPrice: conversation.PropertyPrice,
		Tenant: ConversationParty{
			ID:    conversation.TenantID,
			Name:  conversation.TenantName,
			Photo: conversation.TenantPhoto,
		},
		Landlord: ConversationParty{
			ID:    conversation.LandlordID,
			Name:  conversation.LandlordName,
			Photo: conversation.LandlordPhoto,
		},
		LastMessage:   conversation.LastMessage,
		LastMessageAt: conversation.LastMessageAt,
		Unread:        unread,
		CreatedAt:     conversation.CreatedAt,
	}
}

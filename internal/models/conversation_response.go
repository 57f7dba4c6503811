package models

import "time"

type ConversationParty struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Photo *string `json:"photo"`
}

type ConversationResponse struct {
	ID            uint              `json:"id"`
	PropertyID    uint              `json:"property_id"`
	PropertyTitle string            `json:"property_title"`
	PropertyImage string            `json:"property_image"`
	PropertyPrice float64           `json:"property_price"`
	Tenant        ConversationParty `json:"tenant"`
	Landlord      ConversationParty `json:"landlord"`
	LastMessage   string            `json:"last_message"`
	LastMessageAt *time.Time        `json:"last_message_at"`
	Unread        int               `json:"unread"`
	CreatedAt     time.Time         `json:"created_at"`
}

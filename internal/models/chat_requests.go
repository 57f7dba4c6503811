package models

// StartConversationRequestBody carries the property snapshot the UI already
// holds when the tenant taps "contact landlord".
type StartConversationRequestBody struct {
	PropertyID    uint    `json:"property_id"`
	PropertyTitle string  `json:"property_title"`
	PropertyImage string  `json:"property_image"`
	PropertyPrice float64 `json:"property_price"`
	LandlordID    uint    `json:"landlord_id"`
}

type MessageRequest struct {
	ConversationID uint   `json:"conversation_id"`
	Content        string `json:"content"`
}

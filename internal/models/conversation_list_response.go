package models

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	TotalUnread   int                    `json:"total_unread"`
}

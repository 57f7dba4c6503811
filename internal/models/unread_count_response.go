package models

type UnreadCountResponse struct {
	TotalUnread int `json:"total_unread"`
}

package models

import "time"

type UserResponse struct {
	ID           uint       `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	ProfilePhoto *string    `json:"profile_photo"`
	IsOnline     bool       `json:"is_online"`
	LastSeen     *time.Time `json:"last_seen"`
}

func (ur *UserResponse) FullName() string {
	return ur.FirstName + " " + ur.LastName
}

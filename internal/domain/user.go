package domain

import "time"

type User struct {
	ID          int64     `json:"id"`
	GoogleID    string    `json:"google_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

package models

import "time"

// ConversationSummary is one row of the dashboard conversation list:
// a user plus their most recent message, if any.
type ConversationSummary struct {
	UserID        string     `json:"user_id"`
	DisplayName   string     `json:"display_name"`
	PictureURL    string     `json:"picture_url"`
	IsBotActive   bool       `json:"is_bot_active"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastMessage   *string    `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

// ConversationDetail is the full view of a single conversation:
// the user record plus the chronological message list.
type ConversationDetail struct {
	User     *User     `json:"user"`
	Messages []Message `json:"messages"`
}

package models

import "time"

// Message direction values.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message sender types. Inbound messages come from the user; outbound
// messages are written by the bot or typed by an operator on the dashboard.
// The pairing is kept by caller discipline, not by a stored constraint.
const (
	SenderUser  = "user"
	SenderBot   = "bot"
	SenderHuman = "human"
)

// Message is one entry in the append-only per-user conversation log.
// Rows are immutable once created; display and prompt-context ordering is
// by CreatedAt ascending.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	Content    string    `json:"content" gorm:"not null"`
	Direction  string    `json:"direction" gorm:"check:direction IN ('inbound','outbound')"`
	SenderType string    `json:"sender_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model.
func (Message) TableName() string {
	return "messages"
}

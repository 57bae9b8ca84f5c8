package models

import "time"

// UnknownDisplayName is stored when the LINE profile lookup fails,
// e.g. because the user has blocked the channel.
const UnknownDisplayName = "Unknown User"

// User is a LINE user who has messaged the channel at least once.
// Rows are created on the first inbound event and refreshed on every
// subsequent one; the system never deletes them.
type User struct {
	UserID      string    `json:"user_id" gorm:"primaryKey;column:user_id"`
	DisplayName string    `json:"display_name"`
	PictureURL  string    `json:"picture_url"`
	IsBotActive bool      `json:"is_bot_active" gorm:"default:false"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

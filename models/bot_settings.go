package models

import "time"

// Defaults used when no settings row has been saved yet.
const (
	DefaultBotName              = "AI Assistant"
	DefaultSystemPromptTemplate = "You are a helpful assistant."
)

// BotSettings is a singleton record (one row, id=1) holding the bot's
// display identity and the system prompt template used for generation.
// The settings screen replaces it wholesale; last write wins.
type BotSettings struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	BotName              string    `json:"bot_name"`
	BotAvatarURL         string    `json:"bot_avatar_url"`
	SystemPromptTemplate string    `json:"system_prompt_template"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for the BotSettings model.
func (BotSettings) TableName() string {
	return "bot_settings"
}

// DefaultBotSettings returns the built-in settings used when no row exists.
func DefaultBotSettings() *BotSettings {
	return &BotSettings{
		BotName:              DefaultBotName,
		BotAvatarURL:         "",
		SystemPromptTemplate: DefaultSystemPromptTemplate,
	}
}

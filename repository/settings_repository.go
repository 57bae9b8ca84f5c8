package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rxnlog/experiment-line-bot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID is the fixed primary key of the singleton settings row.
const settingsRowID = 1

// SettingsRepository defines the interface for the singleton bot settings row.
type SettingsRepository interface {
	Get() (*models.BotSettings, error)
	Upsert(settings *models.BotSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the stored settings, or the built-in defaults if no row has
// been saved yet. The defaults are synthesized, not written.
func (r *settingsRepository) Get() (*models.BotSettings, error) {
	var settings models.BotSettings
	err := r.db.First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("INFO: [SettingsRepository] No settings row found. Returning built-in defaults.")
			return models.DefaultBotSettings(), nil
		}
		log.Printf("ERROR: [SettingsRepository] Failed to fetch settings: %v", err)
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return &settings, nil
}

// Upsert replaces the singleton settings row wholesale. Last write wins.
func (r *settingsRepository) Upsert(settings *models.BotSettings) error {
	now := time.Now()
	row := models.BotSettings{
		ID:                   settingsRowID,
		BotName:              settings.BotName,
		BotAvatarURL:         settings.BotAvatarURL,
		SystemPromptTemplate: settings.SystemPromptTemplate,
		UpdatedAt:            now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bot_name":               settings.BotName,
			"bot_avatar_url":         settings.BotAvatarURL,
			"system_prompt_template": settings.SystemPromptTemplate,
			"updated_at":             now,
		}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("ERROR: [SettingsRepository] Failed to upsert settings: %v", err)
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	log.Println("INFO: [SettingsRepository] Bot settings saved.")
	return nil
}

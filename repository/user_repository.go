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

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	UpsertProfile(userID, displayName, pictureURL string) error
	TouchUnknown(userID string) error
	GetByID(userID string) (*models.User, error)
	SetBotActive(userID string, active bool) error
	ListConversations() ([]models.ConversationSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// UpsertProfile inserts or updates a user row with a freshly fetched LINE
// profile. On conflict the display name, avatar and timestamp are refreshed.
func (r *userRepository) UpsertProfile(userID, displayName, pictureURL string) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}

	now := time.Now()
	user := models.User{
		UserID:      userID,
		DisplayName: displayName,
		PictureURL:  pictureURL,
		UpdatedAt:   now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"display_name": displayName,
			"picture_url":  pictureURL,
			"updated_at":   now,
		}),
	}).Create(&user).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to upsert profile for user %s: %v", userID, err)
		return fmt.Errorf("failed to upsert profile for user %s: %w", userID, err)
	}
	return nil
}

// TouchUnknown is the profile-fetch fallback: it guarantees a user row
// exists and bumps its timestamp, without overwriting a display name that
// may have been fetched successfully in the past. New rows get the
// "Unknown User" placeholder.
func (r *userRepository) TouchUnknown(userID string) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}

	now := time.Now()
	user := models.User{
		UserID:      userID,
		DisplayName: models.UnknownDisplayName,
		UpdatedAt:   now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"updated_at": now,
		}),
	}).Create(&user).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to upsert fallback row for user %s: %v", userID, err)
		return fmt.Errorf("failed to upsert fallback row for user %s: %w", userID, err)
	}
	return nil
}

// GetByID retrieves a single user. Returns gorm.ErrRecordNotFound (wrapped)
// if the user does not exist.
func (r *userRepository) GetByID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR: [UserRepository] Failed to fetch user %s: %v", userID, err)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return &user, nil
}

// SetBotActive updates the per-user bot-activation flag. Last write wins;
// updating a nonexistent user is a silent no-op, matching the dashboard
// contract.
func (r *userRepository) SetBotActive(userID string, active bool) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}

	err := r.db.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_bot_active": active,
			"updated_at":    time.Now(),
		}).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to set bot flag for user %s: %v", userID, err)
		return fmt.Errorf("failed to set bot flag for user %s: %w", userID, err)
	}
	log.Printf("INFO: [UserRepository] Bot flag for user %s set to %t.", userID, active)
	return nil
}

// ListConversations returns every user together with their most recent
// message, newest-updated user first. The correlated subqueries keep the
// statement portable between SQLite and PostgreSQL.
func (r *userRepository) ListConversations() ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary

	err := r.db.Raw(`
		SELECT
			u.user_id,
			u.display_name,
			u.picture_url,
			u.is_bot_active,
			u.updated_at,
			(SELECT m.content FROM messages m
				WHERE m.user_id = u.user_id
				ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_message,
			(SELECT m.created_at FROM messages m
				WHERE m.user_id = u.user_id
				ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_message_at
		FROM users u
		ORDER BY u.updated_at DESC
	`).Scan(&summaries).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to list conversations: %v", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return summaries, nil
}

package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rxnlog/experiment-line-bot/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for the append-only message log.
// There are no update or delete operations.
type MessageRepository interface {
	SaveMessage(message *models.Message) error
	GetRecent(userID string, limit int) ([]models.Message, error)
	GetByUserID(userID string) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// SaveMessage appends a message. The database assigns the ID; CreatedAt is
// set server-side at insert time.
func (r *messageRepository) SaveMessage(message *models.Message) error {
	if message.UserID == "" {
		return errors.New("message user ID cannot be empty")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	if err := r.db.Create(message).Error; err != nil {
		log.Printf("ERROR: [MessageRepository] Failed to save %s message for user %s: %v", message.Direction, message.UserID, err)
		return fmt.Errorf("failed to save message for user %s: %w", message.UserID, err)
	}
	log.Printf("INFO: [MessageRepository] Saved %s/%s message (ID: %d) for user %s.", message.Direction, message.SenderType, message.ID, message.UserID)
	return nil
}

// GetRecent returns the last 'limit' messages for a user, newest first.
// Callers reverse the slice when they need chronological order.
func (r *messageRepository) GetRecent(userID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: [MessageRepository] Failed to fetch recent messages for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch recent messages for user %s: %w", userID, err)
	}
	return messages, nil
}

// GetByUserID returns the full message history for a user, oldest first,
// as displayed on the dashboard.
func (r *messageRepository) GetByUserID(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: [MessageRepository] Failed to fetch messages for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch messages for user %s: %w", userID, err)
	}
	return messages, nil
}

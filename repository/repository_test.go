package repository

import (
	"fmt"
	"testing"

	"github.com/rxnlog/experiment-line-bot/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database and migrates the
// schema. The database is named after the test so every connection in the
// pool sees the same schema while tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.BotSettings{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

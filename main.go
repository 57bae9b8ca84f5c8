package main

import (
	"log"

	"github.com/rxnlog/experiment-line-bot/api"
	"github.com/rxnlog/experiment-line-bot/config"
	"github.com/rxnlog/experiment-line-bot/database"
	"github.com/rxnlog/experiment-line-bot/models"
	"github.com/rxnlog/experiment-line-bot/repository"
	"github.com/rxnlog/experiment-line-bot/services"

	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	runMigrations(db)

	// Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize external clients
	lineClient, err := services.NewLineClient(
		config.AppConfig.Line.ChannelSecret,
		config.AppConfig.Line.ChannelAccessToken,
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize LINE client: %v", err)
	}
	replyGen := services.NewReplyGenerator(
		config.AppConfig.LLM.APIKey,
		config.AppConfig.LLM.BaseURL,
		config.AppConfig.LLM.Model,
	)

	// Initialize Services
	profileService := services.NewProfileService(lineClient, userRepo)
	webhookService := services.NewWebhookService(
		profileService,
		userRepo,
		messageRepo,
		settingsRepo,
		lineClient,
		replyGen,
		config.AppConfig.LLM.HistoryWindow,
	)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API Handler and router
	apiHandler := api.NewAPIHandler(userRepo, messageRepo, settingsRepo, lineClient, webhookService)
	router := api.SetupRouter(apiHandler, config.AppConfig.API.SecretKey)

	port := config.AppConfig.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s.", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("FATAL: [Main] Server exited with error: %v", err)
	}
}

// runMigrations keeps the schema in sync at startup.
func runMigrations(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.BotSettings{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database schema: %v", err)
	}
	log.Println("INFO: [Main] Database schema migration complete.")
}

package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// LineConfig holds the LINE Messaging API channel credentials.
type LineConfig struct {
	ChannelSecret      string `mapstructure:"channel_secret"`
	ChannelAccessToken string `mapstructure:"channel_access_token"`
}

// LLMConfig holds the text-generation provider configuration.
// BaseURL points at any OpenAI-compatible endpoint (OpenRouter by default).
type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"` // usually injected via OPENROUTER_API_KEY
	BaseURL       string `mapstructure:"base_url"`
	Model         string `mapstructure:"model"`
	HistoryWindow int    `mapstructure:"history_window"` // number of past messages included in the prompt
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory", a SQLite file path, or a postgres:// URL
	}
	Line LineConfig `mapstructure:"line"`
	LLM  LLMConfig  `mapstructure:"llm"`
	API  struct {
		SecretKey string `mapstructure:"secret_key"` // shared bearer token for the dashboard routes
	} `mapstructure:"api"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
// Environment variables take precedence over config.yaml values.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // For running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("llm.model", "google/gemini-2.5-flash-lite")
	viper.SetDefault("llm.history_window", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}
	if secret := os.Getenv("LINE_CHANNEL_SECRET"); secret != "" {
		AppConfig.Line.ChannelSecret = secret
	}
	if token := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"); token != "" {
		AppConfig.Line.ChannelAccessToken = token
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		AppConfig.LLM.APIKey = key
	}
	if key := os.Getenv("API_SECRET_KEY"); key != "" {
		AppConfig.API.SecretKey = key
	}

	if AppConfig.Line.ChannelSecret == "" {
		log.Println("WARN: [Config] LINE channel secret is not set. Webhook signature validation will reject all deliveries.")
	}
	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] LLM API key is not set. Automated replies will fail until it is provided.")
	}
	if AppConfig.API.SecretKey == "" {
		log.Println("WARN: [Config] API secret key is not set. Dashboard routes will reject every request.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}

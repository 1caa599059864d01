package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port            string
	AllowedOrigins  []string
	LogLevel        string
	Environment     string
	DatabaseURL     string
	RedisURL        string
	Timezone        string // reference time zone for game dates and the deadline
	VoteDeadline    string // daily submission cutoff, HH:MM:SS in the reference time zone
	IconBaseURL     string // blob storage base URL for team icons
	IconPlaceholder string // served when a team has no icon path
	VotePageURL     string // ballot page URL encoded into the QR code
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "production"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		Timezone:        getEnv("TIMEZONE", "Asia/Tokyo"),
		VoteDeadline:    getEnv("VOTE_DEADLINE", "12:30:00"),
		IconBaseURL:     getEnv("ICON_BASE_URL", ""),
		IconPlaceholder: getEnv("ICON_PLACEHOLDER", "/images/no-image.png"),
		VotePageURL:     getEnv("VOTE_PAGE_URL", "http://localhost:3000/vote"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

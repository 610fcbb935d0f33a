package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret string

	// Background workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Notification run
	// The daily sweep fires at NotifyHourUTC:NotifyMinuteUTC (01:00 UTC is
	// 08:00 in the Asia/Jakarta reference timezone).
	NotifyHourUTC   int
	NotifyMinuteUTC int
	// PerContractEmails switches the dispatcher from one digest per tenant
	// to one email per expiring contract (legacy behavior).
	PerContractEmails bool
	SenderName        string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		WorkerCount:       getEnvAsInt("WORKER_COUNT", 4),
		AllowedOrigins:    getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		NotifyHourUTC:     getEnvAsInt("NOTIFY_HOUR_UTC", 1),
		NotifyMinuteUTC:   getEnvAsInt("NOTIFY_MINUTE_UTC", 0),
		PerContractEmails: getEnvAsBool("NOTIFY_PER_CONTRACT", false),
		SenderName:        getEnv("SENDER_NAME", "HR Dashboard"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.NotifyHourUTC < 0 || cfg.NotifyHourUTC > 23 {
		return nil, fmt.Errorf("NOTIFY_HOUR_UTC must be between 0 and 23")
	}
	if cfg.NotifyMinuteUTC < 0 || cfg.NotifyMinuteUTC > 59 {
		return nil, fmt.Errorf("NOTIFY_MINUTE_UTC must be between 0 and 59")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

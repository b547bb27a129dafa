package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port        string
	Debug       bool
	CORSOrigins []string

	// Brand being monitored
	Brand string

	// Cache configuration
	CacheTTL      time.Duration
	BootstrapWait time.Duration
	TopicLimit    int

	// Scheduler configuration
	RefreshInterval time.Duration

	// Persistence configuration
	DatabaseURL      string
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Source configuration
	YouTubeAPIKey    string
	RedditSubreddits []string
	NitterInstances  []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Debug:       getBoolEnv("DEBUG", false),
		CORSOrigins: getSliceEnv("CORS_ORIGINS", []string{"*"}),

		Brand: getEnv("BRAND_NAME", "LeapScholar"),

		CacheTTL:      time.Duration(getIntEnv("CACHE_TTL", 600)) * time.Second,
		BootstrapWait: time.Duration(getIntEnv("BOOTSTRAP_WAIT_SECONDS", 90)) * time.Second,
		TopicLimit:    getIntEnv("TOPIC_LIMIT", 8),

		RefreshInterval: time.Duration(getIntEnv("REFRESH_INTERVAL_MINUTES", 15)) * time.Minute,

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "mentions"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		RedditSubreddits: getSliceEnv("REDDIT_SUBREDDITS", nil),
		NitterInstances:  getSliceEnv("NITTER_INSTANCES", nil),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Brand) == "" {
		return fmt.Errorf("BRAND_NAME must not be empty")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

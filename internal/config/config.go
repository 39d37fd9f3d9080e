package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	Database DatabaseConfig
	WaniKani WaniKaniConfig

	// DefaultPrefix is used when a guild has no stored override.
	DefaultPrefix string

	// PresenceInterval is how long the bot waits between status rotations.
	PresenceInterval time.Duration

	// MetricsAddr is the listen address for /metrics and /healthz.
	MetricsAddr string

	// AssetsDir holds the image assets used by the fun commands.
	AssetsDir string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// WaniKaniConfig holds WaniKani API client settings
type WaniKaniConfig struct {
	BaseURL string
	Timeout time.Duration

	// MaxAssignmentPages bounds pagination in case the API ever returns a
	// malformed cursor chain.
	MaxAssignmentPages int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "crabigator"),
			User:     getEnv("DB_USER", "crabigator"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		WaniKani: WaniKaniConfig{
			BaseURL:            getEnv("WANIKANI_BASE_URL", "https://api.wanikani.com/v2/"),
			Timeout:            getDuration("WANIKANI_TIMEOUT", 30*time.Second),
			MaxAssignmentPages: getInt("WANIKANI_MAX_PAGES", 50),
		},
		DefaultPrefix:    getEnv("COMMAND_PREFIX", "wk!"),
		PresenceInterval: getDuration("PRESENCE_INTERVAL", 10*time.Minute),
		MetricsAddr:      getEnv("METRICS_ADDR", ":9090"),
		AssetsDir:        getEnv("ASSETS_DIR", "img"),
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

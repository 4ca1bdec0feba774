package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultHeartbeatAssetID is the PLANETS token; its zero-amount transfers
// are the liveness signal the sensors emit.
const defaultHeartbeatAssetID = 27165954

type Config struct {
	Development bool
	// Notifications disables the whole watcher when false; the admin API
	// stays up.
	Notifications bool
	// API configuration
	APIPort int
	// Postgres configuration
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	// Indexer configuration
	IndexerURL       string
	IndexerAPIKey    string
	HeartbeatAssetID uint64
	// Scan configuration
	ScanInterval time.Duration
	StaggerDelay time.Duration
	// Notification channel configuration
	FirebaseCredentialsFile string
	TelegramBotToken        string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Development:             getEnvAsBool("DEVELOPMENT", false),
		Notifications:           getEnvAsBool("NOTIFICATIONS", true),
		APIPort:                 getEnvAsInt("API_PORT", 80),
		PostgresUser:            getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:        getEnv("POSTGRES_PASSWORD", "password"),
		PostgresHost:            getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:            getEnvAsInt("POSTGRES_PORT", 5432),
		PostgresDB:              getEnv("POSTGRES_DB", "planetwatcher"),
		IndexerURL:              getEnv("PURESTAKE_API_URL", ""),
		IndexerAPIKey:           getEnv("PURESTAKE_API_KEY", ""),
		HeartbeatAssetID:        getEnvAsUint64("HEARTBEAT_ASSET_ID", defaultHeartbeatAssetID),
		ScanInterval:            time.Duration(getEnvAsInt("SCAN_INTERVAL_MINUTES", 5)) * time.Minute,
		StaggerDelay:            time.Duration(getEnvAsInt("STAGGER_SECONDS", 30)) * time.Second,
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		TelegramBotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.IndexerURL == "" {
		return fmt.Errorf("PURESTAKE_API_URL is required")
	}

	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}

	if c.HeartbeatAssetID == 0 {
		return fmt.Errorf("HEARTBEAT_ASSET_ID must be a positive asset id")
	}

	if c.ScanInterval <= 0 {
		return fmt.Errorf("SCAN_INTERVAL_MINUTES must be positive")
	}

	if c.StaggerDelay < 0 {
		return fmt.Errorf("STAGGER_SECONDS must not be negative")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsUint64(name string, defaultValue uint64) uint64 {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseUint(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return defaultValue
}

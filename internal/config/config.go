package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Portfolio PortfolioConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// PortfolioConfig holds accounting-engine configuration. DefaultAccount is
// the account used when a request does not name one. RateTTL bounds how long
// a fetched USD/HKD rate is reused before refetching.
type PortfolioConfig struct {
	DefaultAccount string
	RateTTL        time.Duration
	FernetKey      string
}

// SchedulerConfig holds the daily snapshot job configuration.
type SchedulerConfig struct {
	Enabled          bool
	SnapshotSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	rateTTL, err := time.ParseDuration(getEnv("RATE_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_CACHE_TTL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stocker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Portfolio: PortfolioConfig{
			DefaultAccount: getEnv("DEFAULT_ACCOUNT", "primary"),
			RateTTL:        rateTTL,
			FernetKey:      os.Getenv("FERNET_KEY"),
		},
		Scheduler: SchedulerConfig{
			Enabled: getEnvBool("SNAPSHOT_ENABLED", true),
			// 05:00 Hong Kong time: after the US close, before the HK open.
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 5 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

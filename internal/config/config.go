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
	Events    EventsConfig
	Scheduler SchedulerConfig
	Market    MarketConfig
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

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}

// EventsConfig configures the RabbitMQ publisher. An empty URL disables events.
type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// Enabled reports whether domain events should be published.
func (e EventsConfig) Enabled() bool {
	return e.AMQPURL != ""
}

// SchedulerConfig holds the cron specs of background jobs.
type SchedulerConfig struct {
	Enabled             bool
	SnapshotSchedule    string
	RecurringSchedule   string
	RecurringHorizon    int
	BackfillYears       int
	SnapshotConcurrency int
}

// MarketConfig configures the market data client.
type MarketConfig struct {
	Timeout time.Duration
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://localhost",
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	horizon, err := getEnvInt("RECURRING_HORIZON_DAYS", 30)
	if err != nil {
		return nil, err
	}
	years, err := getEnvInt("BACKFILL_YEARS", 2)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("SNAPSHOT_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnv("YAHOO_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YAHOO_TIMEOUT: %w", err)
	}
	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/money_manager.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultOrigins),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Events: EventsConfig{
			AMQPURL:  os.Getenv("AMQP_URL"),
			Exchange: getEnv("AMQP_EXCHANGE", "money-manager"),
		},
		Scheduler: SchedulerConfig{
			Enabled:             schedulerEnabled,
			SnapshotSchedule:    getEnv("SNAPSHOT_SCHEDULE", "0 22 * * 1-5"),
			RecurringSchedule:   getEnv("RECURRING_SCHEDULE", "0 1 * * *"),
			RecurringHorizon:    horizon,
			BackfillYears:       years,
			SnapshotConcurrency: concurrency,
		},
		Market: MarketConfig{
			Timeout: timeout,
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

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

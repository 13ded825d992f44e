package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Push gateway that forwards reminders to device notification plugins
	PushGatewayURL string
	PushTimeout    time.Duration

	// Delivery worker pool size (shared across all importance tiers)
	DeliveryWorkers int

	// Rate limiting: maximum deliveries per second per category
	RateLimit int

	// Retry backoff durations: index 0 = first retry delay, etc.
	RetryBackoff []time.Duration

	// Background worker poll intervals
	SchedulerInterval time.Duration
	RetryInterval     time.Duration
	RecurringReload   time.Duration

	// Default lead time applied when a due-dated reminder carries no
	// explicit lead_minutes
	DefaultLead time.Duration

	// Firestore unread source. Disabled when the project ID is empty.
	FirestoreProjectID string
	UnreadCollection   string
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 25)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 5)),

		PushGatewayURL: getEnv("PUSH_GATEWAY_URL", "http://localhost:9090/push"),
		PushTimeout:    getDuration("PUSH_TIMEOUT", 10*time.Second),

		DeliveryWorkers: getInt("DELIVERY_WORKERS", 5),

		RateLimit: getInt("RATE_LIMIT_PER_CATEGORY", 50),

		RetryBackoff: []time.Duration{
			getDuration("RETRY_BACKOFF_1", 5*time.Second),
			getDuration("RETRY_BACKOFF_2", 30*time.Second),
			getDuration("RETRY_BACKOFF_3", 120*time.Second),
		},

		SchedulerInterval: getDuration("SCHEDULER_INTERVAL", 5*time.Second),
		RetryInterval:     getDuration("RETRY_INTERVAL", 10*time.Second),
		RecurringReload:   getDuration("RECURRING_RELOAD", 60*time.Second),

		DefaultLead: getDuration("DEFAULT_LEAD", 30*time.Minute),

		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		UnreadCollection:   getEnv("UNREAD_COLLECTION", "chat_messages"),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

package worker

import (
	"os"
	"strconv"
	"time"

	"github.com/domino14/box/config"
)

// WorkerConfig holds configuration for the scoring worker
type WorkerConfig struct {
	NatsURL string

	// Subject that score requests arrive on
	Subject string

	// Workers in the same queue group share the requests on Subject
	QueueGroup string

	// How many times to try connecting before giving up
	ConnectAttempts uint

	// First delay between connection attempts; later ones back off
	ConnectDelay time.Duration
}

// DefaultWorkerConfig creates a WorkerConfig from the box config, with
// environment overrides for the worker-only settings.
func DefaultWorkerConfig(cfg *config.Config) *WorkerConfig {
	return &WorkerConfig{
		NatsURL:         cfg.GetString(config.ConfigNatsURL),
		Subject:         cfg.GetString(config.ConfigNatsSubject),
		QueueGroup:      getEnv("BOX_WORKER_QUEUE_GROUP", "box-scorers"),
		ConnectAttempts: uint(getEnvInt("BOX_WORKER_CONNECT_ATTEMPTS", 10)),
		ConnectDelay:    getEnvDuration("BOX_WORKER_CONNECT_DELAY", 500*time.Millisecond),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration from an environment variable or returns a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

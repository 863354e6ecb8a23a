// Package config centralises configuration parsing for the analytics service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/manjuvnair16/MLA-app-group3/internal/logging"
)

// Config captures runtime configuration values for the analytics service.
type Config struct {
	HTTPAddress          string
	FirestoreProjectID   string // empty means the in-memory store is used
	ActivitiesCollection string
	JWTSecret            string
	JWTIssuer            string
	DisplayTimezone      string // IANA name used when rendering journal times
	KafkaBrokers         []string
	EventsEnabled        bool
	GeminiAPIKey         string
	GeminiModel          string
	LogLevel             string
	LogPretty            bool
	ShutdownTimeout      time.Duration
}

// Load reads environment variables into Config, applying sensible defaults for
// local dev. A .env file in the working directory is honoured when present.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		logging.Debug("no .env file loaded")
	}

	cfg := Config{
		HTTPAddress:          getEnv("HTTP_ADDRESS", ":8080"),
		FirestoreProjectID:   getEnv("FIRESTORE_PROJECT_ID", ""),
		ActivitiesCollection: getEnv("ACTIVITIES_COLLECTION", "activities"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:            getEnv("JWT_ISSUER", "mla.authservice"),
		DisplayTimezone:      getEnv("DISPLAY_TIMEZONE", "Australia/Sydney"),
		EventsEnabled:        getBoolEnv("EVENTS_ENABLED", false),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogPretty:            getBoolEnv("LOG_PRETTY", false),
		ShutdownTimeout:      getDurationEnv("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	brokers := getEnv("KAFKA_BROKERS", "kafka:9092")
	cfg.KafkaBrokers = splitAndTrim(brokers)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

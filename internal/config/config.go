package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	DailyGoal           int
	RecentWindow        int
	LeechThreshold      int
	ReviewRetentionDays int
	MaintenanceHourUTC  int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:mcattrainer.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		DailyGoal:           envIntOr("DAILY_GOAL", 20),
		RecentWindow:        envIntOr("RECENT_WINDOW", 100),
		LeechThreshold:      envIntOr("LEECH_THRESHOLD", 3),
		ReviewRetentionDays: envIntOr("REVIEW_RETENTION_DAYS", 180),
		MaintenanceHourUTC:  envIntOr("MAINTENANCE_HOUR_UTC", 4),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "DAILY_GOAL", "RECENT_WINDOW",
		"LEECH_THRESHOLD", "REVIEW_RETENTION_DAYS", "MAINTENANCE_HOUR_UTC",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:mcattrainer.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.DailyGoal)
	assert.Equal(t, 100, cfg.RecentWindow)
	assert.Equal(t, 3, cfg.LeechThreshold)
	assert.Equal(t, 180, cfg.ReviewRetentionDays)
	assert.Equal(t, 4, cfg.MaintenanceHourUTC)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DB_PATH", "file:test.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DAILY_GOAL", "50")
	t.Setenv("LEECH_THRESHOLD", "5")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "file:test.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 50, cfg.DailyGoal)
	assert.Equal(t, 5, cfg.LeechThreshold)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DAILY_GOAL", "not-a-number")
	t.Setenv("RECENT_WINDOW", "12.5")

	cfg := Load()

	assert.Equal(t, 20, cfg.DailyGoal)
	assert.Equal(t, 100, cfg.RecentWindow)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SOME_KEY", "value")
	assert.Equal(t, "value", envOr("SOME_KEY", "default"))
	assert.Equal(t, "default", envOr("MISSING_KEY_FOR_TEST", "default"))
}

func TestEnvIntOr(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, envIntOr("SOME_INT", 7))
	assert.Equal(t, 7, envIntOr("MISSING_INT_FOR_TEST", 7))
}

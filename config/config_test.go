package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/smart-pos/models"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, models.OrderStatusPaid, cfg.CheckoutStatus)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 20.0, cfg.RateLimitPerSecond)
	assert.False(t, cfg.TraceStdout)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":                   "9000",
		"DB_DRIVER":              "MySQL",
		"DB_DSN":                 "pos:pos@tcp(localhost:3306)/pos",
		"POS_STRICT_TRANSITIONS": "true",
		"POS_CHECKOUT_STATUS":    "new",
		"API_KEY":                "legacy-key",
		"TRACE_STDOUT":           "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, models.OrderStatusNew, cfg.CheckoutStatus)
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
	assert.True(t, cfg.TraceStdout)
}

func TestFromEnvRejects(t *testing.T) {
	tests := map[string]map[string]string{
		"bad driver":          {"DB_DRIVER": "postgres"},
		"bad checkout status": {"POS_CHECKOUT_STATUS": "served"},
		"bad strict flag":     {"POS_STRICT_TRANSITIONS": "sometimes"},
		"bad rate":            {"RATE_LIMIT_PER_SECOND": "fast"},
		"bad trace flag":      {"TRACE_STDOUT": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(Config{DBDriver: "sqlite", DBDSN: "file::memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkaram/expense_tracker_app/internal/platform/config"
)

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/expense_tracker")
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_DB_CHECK", "true")
	t.Setenv("STORAGE_KEY", "staging")
	t.Setenv("RATE_LIMIT", "10-S")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/expense_tracker", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.EnableDBCheck)
	assert.Equal(t, "staging", cfg.StorageKey)
	assert.Equal(t, "10-S", cfg.RateLimit)
}

func TestLoadConfig_PortFallback(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENABLE_DB_CHECK", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.EnableDBCheck)
}

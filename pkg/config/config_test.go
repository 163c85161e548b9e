package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all Autopilot-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL", "AUTOPILOT_ORG_ID",
		"DATABASE_DRIVER", "DATABASE_URL", "AUTOPILOT_SQLITE_PATH",
		"QUEUE_BACKEND", "QUEUE_CAPACITY", "REDIS_URL", "REDIS_QUEUE_KEY",
		"RABBITMQ_URL",
		"CAMPAIGN_API_BASE_URL", "CAMPAIGN_API_KEY", "CAMPAIGN_API_TIMEOUT",
		"AI_SERVICE_URL", "AI_SERVICE_API_KEY",
		"WORKER_HEALTH_ADDR",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", cfg.OrganizationID)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "", cfg.SQLitePath)

	assert.Equal(t, "memory", cfg.QueueBackend)
	assert.Equal(t, 1024, cfg.QueueCapacity)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)

	assert.Equal(t, 15*time.Second, cfg.CampaignAPITimeout)
	assert.Equal(t, "0.0.0.0:8081", cfg.WorkerHealthAddr)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("APP_ENV", "production")
	os.Setenv("DATABASE_DRIVER", "postgres")
	os.Setenv("QUEUE_BACKEND", "redis")
	os.Setenv("QUEUE_CAPACITY", "256")
	os.Setenv("CAMPAIGN_API_TIMEOUT", "5s")
	os.Setenv("WORKER_HEALTH_ADDR", "127.0.0.1:9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "redis", cfg.QueueBackend)
	assert.Equal(t, 256, cfg.QueueCapacity)
	assert.Equal(t, 5*time.Second, cfg.CampaignAPITimeout)
	assert.Equal(t, "127.0.0.1:9090", cfg.WorkerHealthAddr)
}

func TestLoad_InvalidNumericValuesFallBack(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("QUEUE_CAPACITY", "not-a-number")
	os.Setenv("CAMPAIGN_API_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.QueueCapacity)
	assert.Equal(t, 15*time.Second, cfg.CampaignAPITimeout)
}

func TestIsDevelopment(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	os.Setenv("APP_ENV", "production")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

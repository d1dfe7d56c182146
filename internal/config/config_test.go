package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_CONNECT_ATTEMPTS", "8")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("API_BASE_URL", "http://backend:9090/")
	t.Setenv("BACKEND_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 8, cfg.Database.ConnectAttempts)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "http://backend:9090", cfg.Gateway.BackendBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Gateway.BackendTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "3000", cfg.Gateway.Port)
	assert.Equal(t, DefaultBackendBaseURL, cfg.Gateway.BackendBaseURL)
	assert.Zero(t, cfg.Gateway.BackendTimeout)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.Equal(t, 20<<20, cfg.Gateway.MaxUploadBytes)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Africa/Casablanca"}
	loc := cfg.Location()
	assert.Equal(t, "Africa/Casablanca", loc.String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

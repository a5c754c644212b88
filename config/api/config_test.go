package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3333, cfg.Port)
	assert.Equal(t, "http://localhost:3333/", cfg.BaseURL)
	assert.Equal(t, 4, cfg.APIVersion)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "https://www.youtube.com", cfg.YouTube.BaseURL)
	assert.Equal(t, "US", cfg.YouTube.GL)
	assert.Zero(t, cfg.YouTube.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://api.example.com/")
	t.Setenv("API_VERSION", "1")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("YOUTUBE_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.example.com/", cfg.BaseURL)
	assert.Equal(t, 1, cfg.APIVersion)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 15*time.Second, cfg.YouTube.Timeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("API_VERSION", "0")
	_, err := Load()
	assert.Error(t, err)

	assert.Panics(t, func() { MustLoad() })
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, 250*time.Millisecond, cfg.SaveDebounce)
	assert.False(t, cfg.SMSCapable)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/pantri.db")
	t.Setenv("SAVE_DEBOUNCE_MS", "500")
	t.Setenv("SMS_CAPABLE", "1")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/pantri.db", cfg.DBPath)
	assert.Equal(t, 500*time.Millisecond, cfg.SaveDebounce)
	assert.True(t, cfg.SMSCapable)
}

func TestLoadBadDebounceFallsBack(t *testing.T) {
	t.Setenv("SAVE_DEBOUNCE_MS", "soon")

	cfg := Load()

	assert.Equal(t, 250*time.Millisecond, cfg.SaveDebounce)
}

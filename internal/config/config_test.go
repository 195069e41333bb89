package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND_URL", "http://backend:3000/")
	t.Setenv("SESSION_KEY", "")
	t.Setenv("CSRF_KEY", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://backend:3000", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.ChatPollInterval)
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL)
	assert.Len(t, cfg.SessionKey, 32)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("CHAT_POLL_INTERVAL", "soon")
	t.Setenv("LOGIN_RATE_LIMIT", "-1")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ChatPollInterval)
	assert.Equal(t, float64(5), cfg.LoginRateLimit)
	assert.True(t, containsWarning(cfg.Warnings, "PORT"))
	assert.True(t, containsWarning(cfg.Warnings, "CHAT_POLL_INTERVAL"))
}

func TestLoadConfig_ValidKeyIsDecoded(t *testing.T) {
	raw := []byte(strings.Repeat("k", 40))
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString(raw))

	cfg := LoadConfig()

	assert.Equal(t, raw, cfg.SessionKey)
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := LoadConfig()

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func containsWarning(warnings []string, needle string) bool {
	for _, w := range warnings {
		if strings.Contains(w, needle) {
			return true
		}
	}
	return false
}

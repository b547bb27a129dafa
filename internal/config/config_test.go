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

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "LeapScholar", cfg.Brand)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 90*time.Second, cfg.BootstrapWait)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 8, cfg.TopicLimit)
	assert.Equal(t, "mentions", cfg.StorageContainer)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BRAND_NAME", "Yocket")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDDIT_SUBREDDITS", "gradadmissions,IELTS")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Yocket", cfg.Brand)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"gradadmissions", "IELTS"}, cfg.RedditSubreddits)
	assert.True(t, cfg.Debug)
}

func TestValidateEmptyBrand(t *testing.T) {
	t.Setenv("BRAND_NAME", "   ")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateEmailRequiresSMTP(t *testing.T) {
	t.Setenv("NOTIFICATION_EMAIL", "team@example.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP")
}

func TestValidateEmailWithSMTP(t *testing.T) {
	t.Setenv("NOTIFICATION_EMAIL", "team@example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "bot")
	t.Setenv("SMTP_PASSWORD", "secret")

	_, err := Load()
	assert.NoError(t, err)
}

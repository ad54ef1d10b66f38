package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INVITE_TTL", "")
	cfg := Load()

	assert.Equal(t, 72*time.Hour, cfg.Invite.TTL)
	assert.Equal(t, "Tabbed Journal", cfg.SiteName)
	assert.Equal(t, "log", cfg.Notify.EmailProvider)
	assert.False(t, cfg.EnableBilling)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INVITE_TTL", "24h")
	t.Setenv("CACHE_SIZE", "64")
	t.Setenv("ENABLE_BILLING", "true")
	t.Setenv("EMAIL_PROVIDER", "SES")
	t.Setenv("BASE_URL", "https://journal.example.com/")
	t.Setenv("AWS_S3_BUCKET", "journal-images")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.Invite.TTL)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.True(t, cfg.EnableBilling)
	assert.Equal(t, "ses", cfg.Notify.EmailProvider)
	assert.Equal(t, "https://journal.example.com", cfg.BaseURL)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("CACHE_TTL", "-5m")
	t.Setenv("ENABLE_BILLING", "maybe")

	cfg := Load()

	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.EnableBilling)
}

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("NOTIFICATIONS_BROKER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MAX_STAY_NIGHTS", "")
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "none", cfg.Notifications.Broker)
	assert.Equal(t, 7*24*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, "admin_session", cfg.Admin.CookieName)
	assert.Contains(t, cfg.Database.DSN, "host=localhost")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Admin.JWTSecret)
	assert.Equal(t, 90, cfg.Site.MaxStayNights)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NOTIFICATIONS_BROKER", "Kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ADMIN_SESSION_TTL", "2h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("SITE_TIMEZONE", "Not/AZone")
	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.Equal(t, "kafka", cfg.Notifications.Broker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notifications.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.Admin.SessionTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	t.Run("debug mode tolerates missing secrets", func(t *testing.T) {
		t.Setenv("GIN_MODE", "debug")
		assert.NoError(t, Load().Validate())
	})

	t.Run("release mode requires secrets", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "ADMIN_PASSWORD_HASH")
	})

	t.Run("release mode with short secret", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("JWT_SECRET", "short")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		err := Load().Validate()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "ADMIN_PASSWORD_HASH")
	})

	t.Run("release mode configured", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("JWT_SECRET", strings.Repeat("k", MinJWTSecretLength))
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		assert.NoError(t, Load().Validate())
	})
}

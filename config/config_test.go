package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key; viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/medicore")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8930", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "admin@hms.com", cfg.AdminEmail)
	assert.Equal(t, 15.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.HardenedAccess)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/medicore")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("HARDENED_ACCESS", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.True(t, cfg.HardenedAccess)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRequiresDBURL(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{
		RedisURL:      "redis://localhost:6379/0",
		SessionSecret: strings.Repeat("s", 32),
		SymmetricKey:  strings.Repeat("k", 32),
	}
	assert.NoError(t, cfg.Validate())

	short := *cfg
	short.SessionSecret = "short"
	assert.Error(t, short.Validate())

	badKey := *cfg
	badKey.SymmetricKey = strings.Repeat("k", 31)
	assert.Error(t, badKey.Validate())

	noRedis := *cfg
	noRedis.RedisURL = ""
	assert.Error(t, noRedis.Validate())
}

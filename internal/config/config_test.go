package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "registry")
	t.Setenv("DB_NAME", "registry")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "EL", cfg.DefaultLang)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Auth.LoginRatePerMin)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ReferenceTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LANG", " en ")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://registry.example, http://localhost:5173 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EN", cfg.DefaultLang)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, []string{"https://registry.example", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET must be set for authentication")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("PLTAB_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PLTAB_CACHE_TTL")
}

func TestLoad_InvalidInt(t *testing.T) {
	setRequired(t)
	t.Setenv("LOGIN_RATE_PER_MIN", "five")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LOGIN_RATE_PER_MIN")
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return load(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.ClientURL)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "clientlens.db", cfg.Store.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ScopeTTL)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 20.0, cfg.RateLimit.IPRPS)
	assert.Equal(t, 40, cfg.RateLimit.IPBurst)

	m := cfg.Model()
	assert.Equal(t, 3*time.Second, m.Timeout)
	assert.Equal(t, "gemini-1.5-flash", m.Model)
	assert.True(t, m.FreeTier())
}

func TestLoad_ModelSettings(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{
		"GEMINI_API_KEY":  "abc",
		"AI_TIMEOUT_MS":   "1500",
		"OPTIMIZE_TOKENS": "true",
	})
	require.NoError(t, err)

	m := cfg.Model()
	assert.False(t, m.FreeTier())
	assert.Equal(t, 1500*time.Millisecond, m.Timeout)
	assert.True(t, m.TokenOptimization)

	cfg, err = loadFrom(t, map[string]string{"GEMINI_API_KEY": "abc", "USE_FREE_TIER": "true"})
	require.NoError(t, err)
	assert.True(t, cfg.Model().FreeTier())
}

func TestLoad_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"backend":  {"STORE_BACKEND": "postgres"},
		"timeout":  {"AI_TIMEOUT_MS": "0"},
		"rate":     {"RATE_LIMIT_RPS": "0"},
		"ip rate":  {"RATE_LIMIT_IP_BURST": "0"},
		"not int":  {"AI_TIMEOUT_MS": "soon"},
		"duration": {"SCOPE_CACHE_TTL": "forever"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := loadFrom(t, env)
			assert.Error(t, err)
		})
	}
}

func TestLoad_CacheEnabled(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{
		"REDIS_ADDR":      "localhost:6379",
		"REDIS_PASSWORD":  "s3cret",
		"SCOPE_CACHE_TTL": "30s",
	})
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, "s3cret", cfg.Redis.Password)
	assert.Equal(t, 30*time.Second, cfg.Redis.ScopeTTL)
}

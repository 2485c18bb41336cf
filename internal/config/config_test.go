package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"DATABASE_URL": "postgres://x"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 4*time.Second, cfg.RenderTimeout)
	assert.Equal(t, "naulin", cfg.MQTTTopicPrefix)
	assert.Equal(t, rate.Limit(0.2), cfg.ContactRate)
	assert.Equal(t, 3, cfg.ContactBurst)
	assert.False(t, cfg.AdminEnabled())
	assert.False(t, cfg.UseSpaces)
}

func TestFromEnv_RequiresSource(t *testing.T) {
	_, err := FromEnv(envOf(nil))
	assert.Error(t, err)

	cfg, err := FromEnv(envOf(map[string]string{"CONTENT_API_URL": "http://content"}))
	require.NoError(t, err)
	assert.Equal(t, "http://content", cfg.ContentAPIURL)
}

func TestFromEnv_BadDuration(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":     "postgres://x",
		"PROVIDER_TIMEOUT": "soon",
	}))
	assert.ErrorContains(t, err, "PROVIDER_TIMEOUT")
}

func TestFromEnv_AdminEnabled(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":        "postgres://x",
		"JWT_SECRET":          "s",
		"ADMIN_EMAIL":         "admin@naulin.edu.np",
		"ADMIN_PASSWORD_HASH": "$2a$10$abc",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.AdminEnabled())
}

func TestFromEnv_SpacesNeedsBucket(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL": "postgres://x",
		"USE_SPACES":   "true",
	}))
	assert.Error(t, err)
}

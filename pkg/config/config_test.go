package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PipelineDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Pipeline.QuickTimeout)
	assert.Equal(t, 60*time.Second, cfg.Pipeline.DetailedTimeout)
	assert.Equal(t, 20*time.Second, cfg.Pipeline.RollupTimeout)
	assert.Equal(t, 20*time.Second, cfg.Pipeline.PipelineTimeout)
	assert.Equal(t, 7, cfg.Pipeline.MaxActionItems)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_PipelineOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PIPELINE_QUICK_TIMEOUT", "5s")
	t.Setenv("PIPELINE_MAX_ACTION_ITEMS", "3")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Pipeline.QuickTimeout)
	assert.Equal(t, 3, cfg.Pipeline.MaxActionItems)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestValidate_ProductionRequiresWebhookSecret(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Environment: "production"},
		JWT:      JWTConfig{AccessSecret: "real-secret"},
		Pipeline: PipelineConfig{MaxActionItems: 7},
	}
	assert.Error(t, cfg.Validate())

	cfg.Webhook.Secret = "whsec"
	assert.NoError(t, cfg.Validate())

	cfg.JWT.AccessSecret = defaultAccessSecret
	assert.Error(t, cfg.Validate())
}

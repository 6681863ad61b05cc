package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.AI.APIURL)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MOVEADVISOR_SERVER_ADDR", ":9090")
	t.Setenv("MOVEADVISOR_AI_API_KEY", "sk-test")
	t.Setenv("MOVEADVISOR_LEAD_WEBHOOK_URL", "https://hooks.example.com/leads")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "https://hooks.example.com/leads", cfg.Lead.WebhookURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  addr: ":3000"
cache:
  redis_addr: "localhost:6379"
logging:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

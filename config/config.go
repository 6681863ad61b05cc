// Package config loads service configuration from an optional YAML
// file with environment variable overrides (prefix MOVEADVISOR_).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Lead    LeadConfig    `mapstructure:"lead"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	ReadTimeoutSec  int      `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int      `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec  int      `mapstructure:"idle_timeout_sec"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	RateLimit       int      `mapstructure:"rate_limit"` // requests per minute per client
}

// AIConfig holds the text-generation collaborator settings. An empty
// key disables remote calls; the analysis endpoint then serves the
// deterministic fallback narrative.
type AIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APIURL    string `mapstructure:"api_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// LeadConfig holds the marketing webhook target.
type LeadConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// CacheConfig selects the cache backend. An empty Redis address means
// the in-process memory cache.
type CacheConfig struct {
	RedisAddr  string `mapstructure:"redis_addr"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// Load reads configuration from path (may be empty to rely solely on
// defaults and environment variables).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 15)
	v.SetDefault("server.idle_timeout_sec", 60)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("ai.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 600)
	// Empty defaults register the keys so environment overrides are
	// visible to Unmarshal.
	v.SetDefault("ai.api_key", "")
	v.SetDefault("lead.webhook_url", "")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl_minutes", 60)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("MOVEADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

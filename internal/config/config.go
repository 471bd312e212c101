package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-champ-stats/internal/models"
)

var validate = validator.New()

// Config represents the main configuration structure
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream" validate:"required"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Cache    CacheConfig    `yaml:"cache"`
	Retry    RetryConfig    `yaml:"retry"`
	Server   ServerConfig   `yaml:"server"`
}

// UpstreamConfig describes the third-party analytics site and the query
// filters applied to every request.
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	QueryEndpoint  string `yaml:"query_endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=0"`
	UserAgent      string `yaml:"user_agent"`
	Tier           string `yaml:"tier"`
	Queue          string `yaml:"queue"`
	Region         string `yaml:"region"`
}

// LimiterConfig describes the shared token bucket in front of upstream calls
type LimiterConfig struct {
	Burst        int `yaml:"burst" validate:"gte=0"`
	RefillMillis int `yaml:"refill_ms" validate:"gte=0"`
}

// CacheConfig describes the cache levels and TTL policy
type CacheConfig struct {
	BigCache           BigCacheConfig `yaml:"bigcache"`
	Redis              RedisConfig    `yaml:"redis"`
	PositiveTTLMinutes int            `yaml:"positive_ttl_minutes" validate:"gte=0"`
	StaleTTLMinutes    int            `yaml:"stale_ttl_minutes" validate:"gte=0"`
	NegativeTTLMinutes int            `yaml:"negative_ttl_minutes" validate:"gte=0"`
	MinSampleSize      int            `yaml:"min_sample_size" validate:"gte=0"`
}

// BigCacheConfig configures the in-memory cache level
type BigCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	SizeMB  int  `yaml:"size_mb" validate:"gte=0"`
}

// RedisConfig configures the optional persistent cache level. The database
// is flushed wholesale on cache reset, so it must be dedicated to this app.
type RedisConfig struct {
	Enabled               bool   `yaml:"enabled"`
	URL                   string `yaml:"url"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds" validate:"gte=0"`
	ReadTimeoutSeconds    int    `yaml:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds   int    `yaml:"write_timeout_seconds" validate:"gte=0"`
	PoolSize              int    `yaml:"pool_size" validate:"gte=0"`
}

// RetryConfig bounds the fallback chain
type RetryConfig struct {
	MaxRetries    int `yaml:"max_retries" validate:"gte=0"`
	BackoffMillis int `yaml:"backoff_ms" validate:"gte=0"`
}

// ServerConfig configures the local HTTP API
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://ax.lolalytics.com"
	}
	if c.Upstream.QueryEndpoint == "" {
		c.Upstream.QueryEndpoint = "/mega/"
	}
	if c.Upstream.TimeoutSeconds == 0 {
		c.Upstream.TimeoutSeconds = 10
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if c.Upstream.Tier == "" {
		c.Upstream.Tier = "platinum_plus"
	}
	if c.Upstream.Queue == "" {
		c.Upstream.Queue = "ranked"
	}
	if c.Upstream.Region == "" {
		c.Upstream.Region = "all"
	}

	if c.Limiter.Burst == 0 {
		c.Limiter.Burst = 3
	}
	if c.Limiter.RefillMillis == 0 {
		c.Limiter.RefillMillis = 500
	}

	if c.Cache.BigCache.SizeMB == 0 {
		c.Cache.BigCache.Enabled = true
		c.Cache.BigCache.SizeMB = 32
	}
	if c.Cache.Redis.ConnectTimeoutSeconds == 0 {
		c.Cache.Redis.ConnectTimeoutSeconds = 2
	}
	if c.Cache.Redis.ReadTimeoutSeconds == 0 {
		c.Cache.Redis.ReadTimeoutSeconds = 1
	}
	if c.Cache.Redis.WriteTimeoutSeconds == 0 {
		c.Cache.Redis.WriteTimeoutSeconds = 1
	}
	if c.Cache.Redis.PoolSize == 0 {
		c.Cache.Redis.PoolSize = 4
	}
	if c.Cache.PositiveTTLMinutes == 0 {
		c.Cache.PositiveTTLMinutes = 30
	}
	if c.Cache.StaleTTLMinutes == 0 {
		c.Cache.StaleTTLMinutes = 30
	}
	if c.Cache.NegativeTTLMinutes == 0 {
		c.Cache.NegativeTTLMinutes = 5
	}
	if c.Cache.MinSampleSize == 0 {
		c.Cache.MinSampleSize = 50
	}

	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 2
	}
	if c.Retry.BackoffMillis == 0 {
		c.Retry.BackoffMillis = 400
	}

	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:8987"
	}
}

// UpstreamTimeout returns the per-request timeout
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// RefillPeriod returns the limiter refill period
func (c *Config) RefillPeriod() time.Duration {
	return time.Duration(c.Limiter.RefillMillis) * time.Millisecond
}

// PositiveTTL returns the TTL applied to non-empty results
func (c *Config) PositiveTTL() models.TTL {
	return models.TTL{
		Fresh: time.Duration(c.Cache.PositiveTTLMinutes) * time.Minute,
		Stale: time.Duration(c.Cache.StaleTTLMinutes) * time.Minute,
	}
}

// NegativeTTL returns the TTL applied to known-empty results
func (c *Config) NegativeTTL() models.TTL {
	return models.TTL{Fresh: time.Duration(c.Cache.NegativeTTLMinutes) * time.Minute}
}

// Backoff returns the base backoff delay between retries
func (c *Config) Backoff() time.Duration {
	return time.Duration(c.Retry.BackoffMillis) * time.Millisecond
}

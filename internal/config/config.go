package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/sdk788-art/ec-agent/pkg/config"
)

// Cache backend names.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all configuration for the assistant service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Dataset directory containing the four relation files.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Completion service
	GenBaseURL        string `env:"GEN_API_URL" envDefault:"https://openrouter.ai/api/v1"`
	GenAPIKey         string `env:"GEN_API_KEY"`
	GenModel          string `env:"GEN_MODEL" envDefault:"anthropic/claude-sonnet-4.5"`
	GenTimeoutSeconds int    `env:"GEN_TIMEOUT_SECONDS" envDefault:"30"`

	// Generated-text cache
	CacheBackend    string `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTLMinutes int    `env:"CACHE_TTL_MINUTES" envDefault:"60"`

	// Redis (used when CACHE_BACKEND=redis)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load assistant config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR is required")
	}
	if cfg.GenAPIKey == "" {
		return nil, fmt.Errorf("GEN_API_KEY is required")
	}
	if cfg.GenTimeoutSeconds < 1 {
		return nil, fmt.Errorf("GEN_TIMEOUT_SECONDS must be positive, got %d", cfg.GenTimeoutSeconds)
	}
	if cfg.CacheBackend != CacheBackendMemory && cfg.CacheBackend != CacheBackendRedis {
		return nil, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, cfg.CacheBackend)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	return cfg, nil
}

// GenTimeout returns the completion-call timeout as a duration.
func (c *Config) GenTimeout() time.Duration {
	return time.Duration(c.GenTimeoutSeconds) * time.Second
}

// CacheTTL returns the generated-text cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

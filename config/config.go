package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Alfie     AlfieConfig
	Cache     CacheConfig
	Schedule  ScheduleConfig
	RateLimit RateLimitConfig
	Watch     WatchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AlfieConfig holds quote analysis API configuration
type AlfieConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" is the only supported type
	TTL  time.Duration `mapstructure:"ttl"`
}

// ScheduleConfig holds scheduled evaluation configuration
type ScheduleConfig struct {
	IntervalDays int `mapstructure:"interval_days"`
	TopN         int `mapstructure:"top_n"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	AlfiePerMinute int `mapstructure:"alfie_per_minute"`
}

// WatchConfig holds the cron-driven watch mode configuration
type WatchConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Cron        string `mapstructure:"cron"`
	RequestPath string `mapstructure:"request_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/quotewatch/")

	// Environment variable settings
	v.SetEnvPrefix("QUOTEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8090")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Alfie defaults: the analysis service runs alongside this backend
	v.SetDefault("alfie.base_url", "http://localhost:8080")
	v.SetDefault("alfie.timeout", "60s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Schedule defaults
	v.SetDefault("schedule.interval_days", 7)
	v.SetDefault("schedule.top_n", 3)

	// Rate limit defaults
	v.SetDefault("ratelimit.alfie_per_minute", 60)

	// Watch defaults: Mondays at 09:00, off unless enabled
	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.cron", "0 9 * * 1")
	v.SetDefault("watch.request_path", "watch_request.json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Alfie.BaseURL == "" {
		return fmt.Errorf("alfie base URL is required (set QUOTEWATCH_ALFIE_BASE_URL)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Schedule.IntervalDays <= 0 {
		return fmt.Errorf("schedule interval_days must be positive, got: %d", config.Schedule.IntervalDays)
	}

	if config.Watch.Enabled && config.Watch.RequestPath == "" {
		return fmt.Errorf("watch request_path is required when watch mode is enabled")
	}

	return nil
}

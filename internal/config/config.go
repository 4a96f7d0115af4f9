package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the analysis service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Analytics service
	AnalyticsURL   string        `env:"ANALYTICS_URL,default=http://localhost:8080"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT,default=30s"`
	HTTPRetryCount int           `env:"HTTP_RETRY_COUNT,default=2"`

	// Local testing configuration
	MockupMode  bool   `env:"MOCKUP_MODE,default=false"`
	DatasetPath string `env:"DATASET_PATH"`

	// Default request parameters, chosen by column position
	DefaultColumnIndex     int `env:"DEFAULT_COLUMN_INDEX,default=6"`
	DefaultGroupByIndex    int `env:"DEFAULT_GROUP_BY_INDEX,default=1"`
	DefaultRowFieldIndex   int `env:"DEFAULT_ROW_FIELD_INDEX,default=2"`
	DefaultValueFieldIndex int `env:"DEFAULT_VALUE_FIELD_INDEX,default=5"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values that can never produce a working request
func (c *Config) Validate() error {
	indices := map[string]int{
		"DEFAULT_COLUMN_INDEX":      c.DefaultColumnIndex,
		"DEFAULT_GROUP_BY_INDEX":    c.DefaultGroupByIndex,
		"DEFAULT_ROW_FIELD_INDEX":   c.DefaultRowFieldIndex,
		"DEFAULT_VALUE_FIELD_INDEX": c.DefaultValueFieldIndex,
	}
	for name, v := range indices {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if c.HTTPRetryCount < 0 {
		return fmt.Errorf("HTTP_RETRY_COUNT must not be negative, got %d", c.HTTPRetryCount)
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

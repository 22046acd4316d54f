// Package config holds runtime configuration for the service.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from environment variables.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppPort         string        `envconfig:"APP_PORT" default:"3000"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTokenTTL time.Duration `envconfig:"JWT_TOKEN_TTL" default:"720h"`

	ResetCodeTTL time.Duration `envconfig:"RESET_CODE_TTL" default:"15m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the service runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
)

// Config holds the bot configuration
type Config struct {
	BotToken    string `env:"BOT_TOKEN"`
	AppID       string `env:"DISCORD_APP_ID" validate:"omitempty,number"`
	GuildsDir   string `env:"GUILDS_DIR" envDefault:"guilds" validate:"required"`
	HealthPort  string `env:"HEALTH_PORT" envDefault:"8082" validate:"omitempty,number"`
	Watch       bool   `env:"WATCH_DESCRIPTORS" envDefault:"false"`
	ForceUpdate bool   `env:"DISCORD_FORCE_COMMAND_UPDATE" envDefault:"false"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load(EnvFile)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	if cfg.BotToken == "" {
		return nil, domain.ErrMissingToken
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Logger returns the logger configuration for this process.
func (c *Config) Logger() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, logger.DefaultServiceName, c.Version, c.Environment, c.Environment == logger.EnvironmentDev)
}

// HealthEnabled reports whether the health/metrics server should run.
// HEALTH_PORT=0 turns it off.
func (c *Config) HealthEnabled() bool {
	return c.HealthPort != "" && c.HealthPort != HealthPortDisabled
}

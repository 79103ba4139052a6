package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
)

var configEnvVars = []string{
	"BOT_TOKEN", "DISCORD_APP_ID", "GUILDS_DIR", "HEALTH_PORT", "WATCH_DESCRIPTORS",
	"DISCORD_FORCE_COMMAND_UPDATE", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "VERSION",
}

// clearEnvVars unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when only the token is set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("BOT_TOKEN", "token")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "token", cfg.BotToken)
		assert.Equal(t, "guilds", cfg.GuildsDir)
		assert.Equal(t, "8082", cfg.HealthPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.False(t, cfg.Watch)
		assert.False(t, cfg.ForceUpdate)
		assert.True(t, cfg.HealthEnabled())
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("BOT_TOKEN", "token")
		t.Setenv("DISCORD_APP_ID", "123456789")
		t.Setenv("GUILDS_DIR", "/var/lib/bot/guilds")
		t.Setenv("HEALTH_PORT", "9000")
		t.Setenv("WATCH_DESCRIPTORS", "true")
		t.Setenv("DISCORD_FORCE_COMMAND_UPDATE", "true")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("VERSION", "1.2.3")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "123456789", cfg.AppID)
		assert.Equal(t, "/var/lib/bot/guilds", cfg.GuildsDir)
		assert.Equal(t, "9000", cfg.HealthPort)
		assert.True(t, cfg.Watch)
		assert.True(t, cfg.ForceUpdate)

		logCfg := cfg.Logger()
		assert.Equal(t, "debug", logCfg.Level)
		assert.True(t, logCfg.IsJSON())
		assert.Equal(t, "1.2.3", logCfg.Version)
		assert.False(t, logCfg.AddSource)
	})

	t.Run("health port zero disables the server", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("BOT_TOKEN", "token")
		t.Setenv("HEALTH_PORT", "0")

		cfg, err := Load()

		require.NoError(t, err)
		assert.False(t, cfg.HealthEnabled())
	})
}

func TestLoad_MissingToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("BOT_TOKEN", tt.token)

			cfg, err := Load()

			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, domain.ErrMissingToken)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "HEALTH_PORT", "http"},
		{"non-numeric app id", "DISCORD_APP_ID", "my-app"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"bad boolean", "WATCH_DESCRIPTORS", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("BOT_TOKEN", "token")
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

// Package config loads the bot's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrMissingToken is returned by RequireDiscord when no bot token is configured
var ErrMissingToken = errors.New("DISCORD_TOKEN is required")

type Config struct {
	// Discord
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// DatabaseURL selects Postgres for postgres:// URLs and SQLite otherwise
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:pool.db" validate:"required"`

	// Redis is optional, it only guards status message creation across processes
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	LeaseTTL      time.Duration `env:"PUBLISH_LEASE_TTL" envDefault:"10s" validate:"gt=0"`

	VoteThreshold int `env:"VOTE_THRESHOLD" envDefault:"1" validate:"min=1"`

	// Metrics and health are served only when set
	MetricsAddr string `env:"METRICS_ADDR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// RequireDiscord checks the settings needed to connect to Discord
func (c *Config) RequireDiscord() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	return nil
}

// Logger builds the process logger for the configured level and format
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

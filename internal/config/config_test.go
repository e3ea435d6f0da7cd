package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "file:pool.db", cfg.DatabaseURL)
	assert.Equal(t, 1, cfg.VoteThreshold)
	assert.Equal(t, 10*time.Second, cfg.LeaseTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.MetricsAddr)
	assert.ErrorIs(t, cfg.RequireDiscord(), ErrMissingToken)
}

func TestParseValues(t *testing.T) {
	cfg, err := parseMap(map[string]string{
		"DISCORD_TOKEN":     "token",
		"APPLICATION_ID":    "app",
		"GUILD_ID":          "guild",
		"DATABASE_URL":      "postgres://pool@localhost/pool",
		"REDIS_ADDR":        "localhost:6379",
		"PUBLISH_LEASE_TTL": "3s",
		"VOTE_THRESHOLD":    "3",
		"METRICS_ADDR":      ":9090",
		"LOG_LEVEL":         "debug",
		"LOG_FORMAT":        "json",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://pool@localhost/pool", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.VoteThreshold)
	assert.Equal(t, 3*time.Second, cfg.LeaseTTL)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.NoError(t, cfg.RequireDiscord())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"zero threshold":  {"VOTE_THRESHOLD": "0"},
		"bad threshold":   {"VOTE_THRESHOLD": "many"},
		"bad level":       {"LOG_LEVEL": "loud"},
		"bad format":      {"LOG_FORMAT": "xml"},
		"zero lease":      {"PUBLISH_LEASE_TTL": "0s"},
		"bad lease value": {"PUBLISH_LEASE_TTL": "soon"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseMap(vars)
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "session_id", "session-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "session-1", line["session_id"])

	buf.Reset()
	text := (&Config{LogLevel: "debug", LogFormat: "text"}).Logger(&buf)
	text.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

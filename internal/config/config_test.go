// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "./web/static", cfg.Server.StaticDir)

	assert.Equal(t, 0.15, cfg.Game.AttackRatio)
	assert.Equal(t, 800*time.Millisecond, cfg.Game.MinDelay)
	assert.Equal(t, 2200*time.Millisecond, cfg.Game.MaxDelay)
	assert.Equal(t, 100, cfg.Game.PointsCorrect)
	assert.Equal(t, -50, cfg.Game.PointsIncorrect)

	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
	assert.Equal(t, 100, cfg.Security.RateLimitReqs)
	assert.False(t, cfg.Security.RateLimitDisabled)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"negative attack ratio", func(c *Config) { c.Game.AttackRatio = -0.1 }, "game.attack_ratio"},
		{"attack ratio above one", func(c *Config) { c.Game.AttackRatio = 1.5 }, "game.attack_ratio"},
		{"zero min delay", func(c *Config) { c.Game.MinDelay = 0 }, "game.min_delay"},
		{"max below min", func(c *Config) { c.Game.MinDelay = time.Second; c.Game.MaxDelay = 500 * time.Millisecond }, "game.max_delay"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "security.rate_limit_reqs"},
		{"zero rate window", func(c *Config) { c.Security.RateLimitWindow = 0 }, "security.rate_limit_window"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateSkipsRateLimitWhenDisabled(t *testing.T) {
	cfg := Default()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	cfg.Security.RateLimitWindow = 0

	require.NoError(t, cfg.Validate())
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":           "server.port",
		"HTTP_HOST":           "server.host",
		"GAME_ATTACK_RATIO":   "game.attack_ratio",
		"GAME_MIN_DELAY":      "game.min_delay",
		"RATE_LIMIT_REQUESTS": "security.rate_limit_reqs",
		"CORS_ORIGINS":        "security.cors_origins",
		"LOG_LEVEL":           "logging.level",
	}
	for envKey, want := range tests {
		assert.Equal(t, want, envTransformFunc(envKey), envKey)
	}

	// Unknown variables are dropped, not passed through.
	assert.Empty(t, envTransformFunc("PATH"))
	assert.Empty(t, envTransformFunc("HOME"))
	assert.Empty(t, envTransformFunc("GOFLAGS"))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("GAME_ATTACK_RATIO", "0.5")
	t.Setenv("GAME_MIN_DELAY", "100ms")
	t.Setenv("GAME_MAX_DELAY", "200ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Game.AttackRatio)
	assert.Equal(t, 100*time.Millisecond, cfg.Game.MinDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Game.MaxDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	configYAML := `
server:
  port: 8443
  timeout: 45s
game:
  attack_ratio: 0.25
security:
  cors_origins:
    - https://dashboard.example.com
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 0.25, cfg.Game.AttackRatio)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Security.CORSOrigins)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched values keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 100, cfg.Game.PointsCorrect)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8443\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package config loads and validates application configuration from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, with environment variables taking precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Game     GameConfig     `koanf:"game"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	StaticDir   string        `koanf:"static_dir"`
	Environment string        `koanf:"environment"`
}

// GameConfig holds simulation and scoring settings.
type GameConfig struct {
	// AttackRatio is the probability that a synthesized log entry is an
	// attack, in [0, 1].
	AttackRatio float64 `koanf:"attack_ratio"`

	// MinDelay and MaxDelay bound the random pause between broadcast
	// cycles.
	MinDelay time.Duration `koanf:"min_delay"`
	MaxDelay time.Duration `koanf:"max_delay"`

	// PointsCorrect is awarded for a correct decision; PointsIncorrect
	// (typically negative) is applied for an incorrect one.
	PointsCorrect   int `koanf:"points_correct"`
	PointsIncorrect int `koanf:"points_incorrect"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all defaults applied and no file or
// environment layering. Useful for tests and embedded use.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all defaults applied. These are
// layered under the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			Timeout:     30 * time.Second,
			StaticDir:   "./web/static",
			Environment: "development",
		},
		Game: GameConfig{
			AttackRatio:     0.15,
			MinDelay:        800 * time.Millisecond,
			MaxDelay:        2200 * time.Millisecond,
			PointsCorrect:   100,
			PointsIncorrect: -50,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Game.AttackRatio < 0 || c.Game.AttackRatio > 1 {
		return fmt.Errorf("game.attack_ratio must be in [0, 1], got %v", c.Game.AttackRatio)
	}
	if c.Game.MinDelay <= 0 {
		return fmt.Errorf("game.min_delay must be positive, got %s", c.Game.MinDelay)
	}
	if c.Game.MaxDelay < c.Game.MinDelay {
		return fmt.Errorf("game.max_delay (%s) must not be less than game.min_delay (%s)",
			c.Game.MaxDelay, c.Game.MinDelay)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	return nil
}

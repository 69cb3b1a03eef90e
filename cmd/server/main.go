// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package main is the entry point for the API Guardian server.
//
// API Guardian is a live security-training simulator: it synthesizes API
// access logs (a mix of benign industry traffic and attack patterns),
// classifies each entry with an ordered rule cascade, and streams the
// annotated entries to connected players over WebSocket. Players submit
// block/pass decisions on a second WebSocket and are scored in real time.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 sources (defaults, YAML file, env)
//  2. Stream hub: fans broadcast payloads out to subscribers
//  3. Synthesizer and game engine: log generation, classification, scoring
//  4. HTTP server: WebSocket endpoints, health probes, catalog, metrics,
//     and the static dashboard
//  5. Supervisor tree: suture supervision of the hub, engine, and server
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (HTTP_PORT, GAME_ATTACK_RATIO, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, closes every WebSocket client, and waits up to
// 10 seconds for in-flight requests.
//
// # Example Usage
//
//	export HTTP_PORT=8000
//	export GAME_ATTACK_RATIO=0.15
//	./api-guardian
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msabenda/api-guardian-game/internal/api"
	"github.com/msabenda/api-guardian-game/internal/config"
	"github.com/msabenda/api-guardian-game/internal/game"
	"github.com/msabenda/api-guardian-game/internal/logging"
	"github.com/msabenda/api-guardian-game/internal/supervisor"
	"github.com/msabenda/api-guardian-game/internal/supervisor/services"
	"github.com/msabenda/api-guardian-game/internal/synth"
	ws "github.com/msabenda/api-guardian-game/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Int("port", cfg.Server.Port).
		Float64("attack_ratio", cfg.Game.AttackRatio).
		Dur("min_delay", cfg.Game.MinDelay).
		Dur("max_delay", cfg.Game.MaxDelay).
		Msg("Starting API Guardian")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Core components: hub first, engine generates into it.
	hub := ws.NewHub()
	synthesizer := synth.New(synth.WithAttackRatio(cfg.Game.AttackRatio))
	engine := game.NewEngine(synthesizer, hub, game.Config{
		MinDelay:        cfg.Game.MinDelay,
		MaxDelay:        cfg.Game.MaxDelay,
		PointsCorrect:   cfg.Game.PointsCorrect,
		PointsIncorrect: cfg.Game.PointsIncorrect,
	})
	registry := ws.NewActionRegistry()

	handler := api.NewHandler(hub, registry, engine, cfg)
	chiMW := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMW, cfg.Server.StaticDir)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: 0, // WebSocket connections are long-lived
		IdleTimeout:  120 * time.Second,
	}

	// Game layer services.
	tree.AddGameService(services.NewWebSocketHubService(hub))
	tree.AddGameService(services.NewEngineService(engine))

	// API layer services.
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Signal handling for graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package api provides the HTTP surface of the simulator: the live log
// stream and decision WebSocket endpoints, health probes, catalog and
// stats endpoints, Prometheus metrics, and the static dashboard.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrader (this file)
//   - handlers_helpers.go: shared response helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_stream.go: stream and action WebSocket endpoints
//   - handlers_catalog.go: catalog and game stats endpoints
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msabenda/api-guardian-game/internal/config"
	"github.com/msabenda/api-guardian-game/internal/game"
	"github.com/msabenda/api-guardian-game/internal/logging"
	ws "github.com/msabenda/api-guardian-game/internal/websocket"
)

// Version is the reported application version.
const Version = "1.0.0"

// Handler contains dependencies for API handlers.
type Handler struct {
	hub       *ws.Hub
	registry  *ws.ActionRegistry
	engine    *game.Engine
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - hub: stream hub that fans broadcast payloads out to subscribers
//   - registry: bookkeeping for open action connections
//   - engine: game engine, used for decision scoring and stats
//   - cfg: application configuration
func NewHandler(hub *ws.Hub, registry *ws.ActionRegistry, engine *game.Engine, cfg *config.Config) *Handler {
	return &Handler{
		hub:       hub,
		registry:  registry,
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout guarding against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins. A missing Origin header (non-browser clients
// such as scripted players) is accepted only when the wildcard origin is
// configured.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	// Fail open when config is absent (tests, development).
	if h.config == nil {
		return true
	}

	origin := r.Header.Get("Origin")
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || (origin != "" && allowed == origin) {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package api

import (
	"net/http"

	"github.com/msabenda/api-guardian-game/internal/logging"
	ws "github.com/msabenda/api-guardian-game/internal/websocket"
)

// Stream upgrades the connection and registers the client as a broadcast
// subscriber. An immediate generation cycle is triggered so the new
// subscriber sees a log entry right away instead of waiting out the
// current delay.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("Stream connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Stream service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("Stream WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()

	h.engine.TriggerImmediate()
}

// Action upgrades the connection and serves decision messages until the
// client disconnects. Each valid decision is scored and the awarded points
// are written back on the same connection.
func (h *Handler) Action(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		logging.Warn().Msg("Action connection rejected: engine not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Action service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("Action WebSocket upgrade error")
		return
	}

	client := ws.NewActionClient(h.registry, h.engine, conn)
	go client.Run()
}

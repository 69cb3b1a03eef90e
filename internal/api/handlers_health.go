// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package api

import (
	"net/http"
	"time"

	"github.com/msabenda/api-guardian-game/internal/models"
)

// Health returns overall health: uptime plus live subscriber and action
// connection counts. The simulator has no external dependencies, so it is
// healthy whenever it can answer.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondSuccess(w, models.HealthStatus{
		Status:            "healthy",
		Version:           Version,
		Uptime:            time.Since(h.startTime).Seconds(),
		StreamSubscribers: h.hub.ClientCount(),
		ActionConnections: h.registry.Count(),
	})
}

// HealthLive is a Kubernetes-style liveness probe. Returns 200 whenever
// the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is a Kubernetes-style readiness probe. The service is ready
// once the hub and engine are wired, which is guaranteed at construction,
// so this reports ready unless dependencies were omitted.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	ready := h.hub != nil && h.engine != nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

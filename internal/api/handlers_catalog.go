// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package api

import (
	"net/http"

	"github.com/msabenda/api-guardian-game/internal/catalog"
	"github.com/msabenda/api-guardian-game/internal/models"
)

// CatalogIndustries lists the industry profiles benign traffic is drawn
// from.
func (h *Handler) CatalogIndustries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"industries": catalog.Industries,
		"count":      len(catalog.Industries),
	})
}

// CatalogAttacks lists the attack patterns malicious traffic is drawn
// from.
func (h *Handler) CatalogAttacks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"attacks": catalog.AttackPatterns,
		"count":   len(catalog.AttackPatterns),
	})
}

// GameStats returns a point-in-time snapshot of engine counters plus the
// live subscriber count.
func (h *Handler) GameStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var stats models.GameStats
	if h.engine != nil {
		stats = h.engine.Stats()
	}
	stats.StreamSubscribers = h.hub.ClientCount()

	respondSuccess(w, stats)
}

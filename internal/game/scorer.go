// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package game

import (
	"github.com/msabenda/api-guardian-game/internal/logging"
	"github.com/msabenda/api-guardian-game/internal/metrics"
	"github.com/msabenda/api-guardian-game/internal/models"
)

// Score grades one player decision. Repeat submissions for an id that was
// already processed return (nil, false) and are otherwise ignored, which
// makes submission idempotent. A graded decision earns PointsCorrect when
// the block/pass call matches the ground truth and PointsIncorrect when it
// does not, and fires one more (delayed) distribution cycle so play
// continues only after a decision is made.
//
// The trigger is fire-and-forget: it never blocks the reply to the
// triggering decision.
func (e *Engine) Score(decision *models.Decision) (*models.ScoreReply, bool) {
	e.mu.Lock()
	if _, seen := e.processed[decision.ID]; seen {
		e.mu.Unlock()
		metrics.RecordDecision("duplicate", 0)
		logging.Debug().Int64("id", decision.ID).Msg("duplicate decision ignored")
		return nil, false
	}
	e.processed[decision.ID] = struct{}{}
	e.mu.Unlock()

	correct := (decision.Action == models.ActionBlock) == decision.RealAnomaly
	points := e.cfg.PointsIncorrect
	outcome := "incorrect"
	if correct {
		points = e.cfg.PointsCorrect
		outcome = "correct"
		e.correctDecisions.Add(1)
	}
	e.decisionsScored.Add(1)
	metrics.RecordDecision(outcome, points)

	logging.Info().
		Int64("id", decision.ID).
		Str("action", decision.Action).
		Bool("real_anomaly", decision.RealAnomaly).
		Int("points", points).
		Msg("decision scored")

	e.TriggerCycle()

	return &models.ScoreReply{Points: points}, true
}

// ProcessedCount returns the size of the dedup set. Intended for tests and
// observability only.
func (e *Engine) ProcessedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.processed)
}

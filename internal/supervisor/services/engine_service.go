// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package services

import (
	"context"
)

// EngineService wraps the game engine loop as a supervised service. A
// restart after a crash re-enters the generation loop with counters and
// the decision dedup set intact, since they live on the engine rather
// than in the loop.
type EngineService struct {
	engine ContextRunner
	name   string
}

// NewEngineService creates a new engine service wrapper.
func NewEngineService(engine ContextRunner) *EngineService {
	return &EngineService{
		engine: engine,
		name:   "game-engine",
	}
}

// Serve implements suture.Service.
func (e *EngineService) Serve(ctx context.Context) error {
	return e.engine.RunWithContext(ctx)
}

// String implements fmt.Stringer for logging.
func (e *EngineService) String() string {
	return e.name
}

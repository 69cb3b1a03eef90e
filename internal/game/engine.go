// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package game orchestrates the simulator: the distribution loop that
// paces log generation and broadcasts verdicts, and the scorer that grades
// player decisions against the classifier's ground truth.
package game

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/msabenda/api-guardian-game/internal/classify"
	"github.com/msabenda/api-guardian-game/internal/logging"
	"github.com/msabenda/api-guardian-game/internal/metrics"
	"github.com/msabenda/api-guardian-game/internal/models"
	"github.com/msabenda/api-guardian-game/internal/synth"
)

// Broadcaster pushes a payload to all connected stream subscribers.
//
// Satisfied by *websocket.Hub.
type Broadcaster interface {
	Broadcast(payload *models.BroadcastPayload)
}

// Config holds the engine's pacing and scoring parameters.
type Config struct {
	// MinDelay and MaxDelay bound the uniform random wait before each
	// non-immediate cycle, modeling realistic inter-request spacing.
	MinDelay time.Duration
	MaxDelay time.Duration

	// PointsCorrect and PointsIncorrect are the deltas for graded
	// decisions.
	PointsCorrect   int
	PointsIncorrect int
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		MinDelay:        800 * time.Millisecond,
		MaxDelay:        2200 * time.Millisecond,
		PointsCorrect:   100,
		PointsIncorrect: -50,
	}
}

// Engine runs the distribution loop. Cycles are demand-driven: one is
// triggered when a subscriber connects (immediately) and after every scored
// decision (with a randomized delay), so play continues only after the
// player acts.
//
// The engine owns the decision dedup set; it grows for the lifetime of the
// process and is never pruned. That unbounded growth is an accepted
// tradeoff for a training demo.
type Engine struct {
	synthesizer *synth.Synthesizer
	broadcaster Broadcaster
	cfg         Config

	// trigger carries pending cycle requests. Sends are non-blocking;
	// a full queue means cycles are already pending and another request
	// adds nothing.
	trigger chan cycleRequest

	// rng paces the inter-cycle delay. It is only touched from the run
	// loop goroutine.
	rng *rand.Rand

	mu        sync.Mutex
	processed map[int64]struct{}

	entriesGenerated atomic.Int64
	attacksGenerated atomic.Int64
	decisionsScored  atomic.Int64
	correctDecisions atomic.Int64
}

type cycleRequest struct {
	immediate bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the delay random source. Tests use this together with
// short delays for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine creates an engine. Zero-valued config fields fall back to the
// defaults.
func NewEngine(synthesizer *synth.Synthesizer, broadcaster Broadcaster, cfg Config, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = def.MinDelay
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	if cfg.PointsCorrect == 0 {
		cfg.PointsCorrect = def.PointsCorrect
	}
	if cfg.PointsIncorrect == 0 {
		cfg.PointsIncorrect = def.PointsIncorrect
	}

	e := &Engine{
		synthesizer: synthesizer,
		broadcaster: broadcaster,
		cfg:         cfg,
		trigger:     make(chan cycleRequest, 64),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		processed:   make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TriggerCycle requests one delayed distribution cycle. The send is
// non-blocking: the caller never waits on the loop, and a saturated queue
// drops the request because enough cycles are already pending.
func (e *Engine) TriggerCycle() {
	select {
	case e.trigger <- cycleRequest{}:
	default:
	}
}

// TriggerImmediate requests one cycle without the initial delay. Used when
// a subscriber connects so the first payload arrives promptly.
func (e *Engine) TriggerImmediate() {
	select {
	case e.trigger <- cycleRequest{immediate: true}:
	default:
	}
}

// RunWithContext processes cycle requests until the context is canceled.
// Designed for suture supervision; returns ctx.Err() on shutdown. The
// delay before a non-immediate cycle is cancellable, so teardown never
// waits out a pending sleep.
func (e *Engine) RunWithContext(ctx context.Context) error {
	logging.Info().
		Dur("min_delay", e.cfg.MinDelay).
		Dur("max_delay", e.cfg.MaxDelay).
		Msg("game engine started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Str("component", "game-engine").Msg("game engine stopped")
			return ctx.Err()

		case req := <-e.trigger:
			if !req.immediate {
				if err := e.sleep(ctx); err != nil {
					logging.Info().Str("component", "game-engine").Msg("game engine stopped")
					return err
				}
			}
			e.runCycle()
		}
	}
}

// sleep waits a uniform random duration in [MinDelay, MaxDelay], or until
// the context is canceled.
func (e *Engine) sleep(ctx context.Context) error {
	delay := e.cfg.MinDelay
	if span := e.cfg.MaxDelay - e.cfg.MinDelay; span > 0 {
		delay += time.Duration(e.rng.Int63n(int64(span) + 1))
	}
	metrics.CycleDelay.Observe(delay.Seconds())

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// runCycle synthesizes one entry, classifies it, and broadcasts the
// payload to all subscribers.
func (e *Engine) runCycle() {
	entry, id := e.synthesizer.Generate()
	verdict := classify.Classify(entry)

	kind := "benign"
	if entry.Sector == models.SectorAttack {
		kind = "attack"
		e.attacksGenerated.Add(1)
	}
	e.entriesGenerated.Add(1)
	metrics.RecordGenerated(kind, verdict.Reason)

	payload := &models.BroadcastPayload{
		ID:      id,
		Log:     entry,
		Anomaly: verdict.IsAttack,
		Score:   roundScore(verdict.Score),
		Threat:  verdict.Reason,
	}

	logging.Debug().
		Int64("id", id).
		Str("sector", entry.Sector).
		Bool("anomaly", verdict.IsAttack).
		Str("threat", verdict.Reason).
		Msg("broadcasting log entry")

	e.broadcaster.Broadcast(payload)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() models.GameStats {
	return models.GameStats{
		EntriesGenerated: e.entriesGenerated.Load(),
		AttacksGenerated: e.attacksGenerated.Load(),
		DecisionsScored:  e.decisionsScored.Load(),
		CorrectDecisions: e.correctDecisions.Load(),
	}
}

// roundScore rounds a verdict score to 3 decimals for the wire.
func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

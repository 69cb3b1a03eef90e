// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package websocket

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/msabenda/api-guardian-game/internal/logging"
	"github.com/msabenda/api-guardian-game/internal/metrics"
	"github.com/msabenda/api-guardian-game/internal/models"
	"github.com/msabenda/api-guardian-game/internal/validation"
)

// DecisionScorer scores a player's block/pass decision against the ground
// truth. The boolean result is false when the decision's id was already
// processed, in which case no reply is sent.
//
// Satisfied by *game.Engine.
type DecisionScorer interface {
	Score(decision *models.Decision) (*models.ScoreReply, bool)
}

// ActionRegistry tracks open action connections. It exists so health and
// stats endpoints can report the connection count; membership changes only
// on connect and disconnect.
type ActionRegistry struct {
	mu    sync.Mutex
	conns map[*ActionClient]struct{}
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{conns: make(map[*ActionClient]struct{})}
}

func (r *ActionRegistry) add(c *ActionClient) {
	r.mu.Lock()
	r.conns[c] = struct{}{}
	total := len(r.conns)
	r.mu.Unlock()

	metrics.ActionConnections.Set(float64(total))
	logging.Info().Int("total_connections", total).Msg("action client connected")
}

func (r *ActionRegistry) remove(c *ActionClient) {
	r.mu.Lock()
	delete(r.conns, c)
	total := len(r.conns)
	r.mu.Unlock()

	metrics.ActionConnections.Set(float64(total))
	logging.Info().Int("total_connections", total).Msg("action client disconnected")
}

// Count returns the number of open action connections.
func (r *ActionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// ActionClient handles one decision connection. Its lifecycle is a single
// loop: receive decision, score, reply, until disconnect. All message
// handling failures are logged and the loop continues; only a read error
// (the peer is gone) terminates it.
type ActionClient struct {
	registry *ActionRegistry
	scorer   DecisionScorer
	conn     *websocket.Conn
}

// NewActionClient creates a handler for one action connection.
func NewActionClient(registry *ActionRegistry, scorer DecisionScorer, conn *websocket.Conn) *ActionClient {
	return &ActionClient{registry: registry, scorer: scorer, conn: conn}
}

// Run registers the connection and processes decision messages until the
// peer disconnects. It blocks; callers run it in the connection's handler
// goroutine. A failure on this connection never affects other connections
// or the distribution loop.
func (c *ActionClient) Run() {
	c.registry.add(c)
	defer func() {
		c.registry.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected action connection close")
			}
			return
		}

		c.handleMessage(data)
	}
}

// handleMessage scores one inbound decision and writes the points reply.
// Malformed or invalid messages are dropped after logging; duplicate
// submissions are silently ignored.
func (c *ActionClient) handleMessage(data []byte) {
	var decision models.Decision
	if err := json.Unmarshal(data, &decision); err != nil {
		logging.Warn().Err(err).Msg("malformed decision message")
		return
	}
	if err := validation.ValidateStruct(&decision); err != nil {
		logging.Warn().Err(err).Int64("id", decision.ID).Msg("invalid decision message")
		return
	}

	reply, scored := c.scorer.Score(&decision)
	if !scored {
		return
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set write deadline for reply")
		return
	}
	out, err := json.Marshal(reply)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal score reply")
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, out); err != nil {
		logging.Error().Err(err).Msg("failed to write score reply")
	}
}

// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/msabenda/api-guardian-game/internal/logging"
	"github.com/msabenda/api-guardian-game/internal/metrics"
	"github.com/msabenda/api-guardian-game/internal/models"
)

// Hub maintains the set of active stream subscribers and fans broadcast
// payloads out to them. Delivery to a single subscriber is strictly ordered
// (one buffered FIFO channel per client); no ordering is guaranteed across
// subscribers.
//
// There is no backpressure: a subscriber whose send buffer fills up is
// dropped rather than slowing the generation loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *models.BroadcastPayload
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan *models.BroadcastPayload, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until the context is canceled. It is designed
// for suture supervision: on cancellation all connected clients are closed
// and ctx.Err() is returned, so a supervisor restart never leaves orphaned
// connections.
//
// Selection is priority-based to keep behavior predictable when several
// channels are ready: shutdown first, then client lifecycle events, then
// broadcasts. Go's select picks randomly among ready cases, which would
// otherwise let a broadcast race ahead of an unregister for the same client.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: shutdown (non-blocking check).
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: client lifecycle events (non-blocking check).
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		// Priority 3: block until any event arrives.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.broadcastToClients(payload)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.StreamSubscribers.Set(float64(total))
	logging.Info().Int("total_subscribers", total).Msg("stream subscriber connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.StreamSubscribers.Set(float64(total))
	logging.Info().Int("total_subscribers", total).Msg("stream subscriber disconnected")
}

// Broadcast queues a payload for delivery to every connected subscriber.
// The send is non-blocking; if the hub's queue is full the payload is
// dropped and logged rather than stalling the distribution cycle.
func (h *Hub) Broadcast(payload *models.BroadcastPayload) {
	select {
	case h.broadcast <- payload:
	default:
		metrics.BroadcastsDropped.Inc()
		logging.Warn().Int64("id", payload.ID).Msg("broadcast channel full, dropping payload")
	}
}

// broadcastToClients delivers one payload to all subscribers in client-ID
// order. Clients whose send buffer is full are treated as gone and removed;
// a failure for one subscriber never prevents delivery to the rest.
func (h *Hub) broadcastToClients(payload *models.BroadcastPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- payload:
			metrics.BroadcastsDelivered.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.BroadcastsDropped.Inc()
		logging.Warn().Uint64("client_id", client.id).Msg("dropping unresponsive stream subscriber")
	}
	metrics.StreamSubscribers.Set(float64(len(h.clients)))
}

// shutdown closes every connected client and logs the reason. Context
// cancellation is expected during graceful shutdown, so it is not logged
// as an error.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	closed := len(h.clients)
	clients := make([]*Client, 0, closed)
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.StreamSubscribers.Set(0)
	logging.Info().
		Str("component", "websocket-hub").
		AnErr("reason", ctx.Err()).
		Int("clients_closed", closed).
		Msg("websocket hub stopped")
}

// ClientCount returns the number of connected stream subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

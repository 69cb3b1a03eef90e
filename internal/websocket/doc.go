// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package websocket implements the real-time distribution layer: a Hub
// that fans BroadcastPayloads out to stream subscribers, and per-connection
// clients for the two duplex endpoints.
//
// # Stream endpoint
//
// Each /ws connection gets a Client with a buffered FIFO send channel.
// Payloads are delivered in generation order per subscriber. A subscriber
// that stops draining its channel is dropped; delivery failures are
// isolated per connection and never abort a broadcast cycle.
//
// # Action endpoint
//
// Each /action connection gets an ActionClient that reads decision
// messages, has them scored, and writes the points reply on the same
// connection. Duplicate submissions get no reply. The ActionRegistry only
// tracks membership for observability.
//
// # Ownership
//
// The Hub owns the stream subscriber set and is its sole mutator (all
// changes funnel through the Register/Unregister channels into the hub's
// single Run goroutine). The scorer owns the decision dedup state; the
// websocket layer never touches it directly.
package websocket

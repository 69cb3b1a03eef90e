// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package services wraps the long-running components as suture services.
package services

import (
	"context"
)

// ContextRunner matches the RunWithContext pattern shared by the stream
// hub and the game engine. Using an interface here keeps this package
// free of imports of the websocket and game packages.
type ContextRunner interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService wraps the stream hub as a supervised service.
//
// The hub's RunWithContext method already implements the suture.Service
// pattern, so this wrapper simply delegates to it and provides a name
// for logging.
//
//	hub := websocket.NewHub()
//	tree.AddGameService(services.NewWebSocketHubService(hub))
type WebSocketHubService struct {
	hub  ContextRunner
	name string
}

// NewWebSocketHubService creates a new hub service wrapper.
func NewWebSocketHubService(hub ContextRunner) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service. Returns ctx.Err() on normal shutdown
// after the hub has closed all connected clients.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	return w.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer; suture uses this to identify the
// service in log messages.
func (w *WebSocketHubService) String() string {
	return w.name
}

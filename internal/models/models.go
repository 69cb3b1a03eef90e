// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package models defines the shared data types exchanged between the
// synthesizer, classifier, game engine, and WebSocket clients.
package models

import (
	"time"
)

// LogEntry is one simulated HTTP request observation. It is constructed
// fresh by the synthesizer on every cycle, immutable thereafter, and never
// persisted.
type LogEntry struct {
	// Method is the HTTP method, GET or POST.
	Method string `json:"method"`

	// Path is the request path, possibly with a randomized numeric token.
	Path string `json:"path"`

	// IP is the source address in dotted-quad form.
	IP string `json:"ip"`

	// UserAgent is drawn from the benign agent list or an attack
	// pattern's fixed malicious string.
	UserAgent string `json:"user_agent"`

	// Freq is the observed requests-per-minute for this synthetic
	// source. It is the primary attack signal.
	Freq int `json:"freq"`

	// Sector tags the entry with an industry name, or the literal
	// "attack" for entries drawn from an attack pattern.
	Sector string `json:"sector"`

	// Score carries an externally supplied threat score consulted by the
	// classifier. The synthesizer never sets it, so it is omitted from
	// the wire for all generated entries.
	Score float64 `json:"score,omitempty"`
}

// SectorAttack is the sector tag for entries drawn from an attack pattern.
const SectorAttack = "attack"

// Verdict is the classifier output for one LogEntry. It is derived, never
// stored, and recomputed deterministically from the entry's fields.
type Verdict struct {
	// IsAttack reports whether the entry matched an attack rule (or the
	// fail-closed default).
	IsAttack bool `json:"is_attack"`

	// Score is a monotonically informative severity. Attack scores
	// cluster in 1.2-2.9, benign scores in 0.05-0.1.
	Score float64 `json:"score"`

	// Reason is the label of the first matching cascade rule.
	Reason string `json:"reason"`
}

// BroadcastPayload is the wire envelope pushed to every stream subscriber
// once per distribution cycle.
type BroadcastPayload struct {
	// ID is a best-effort-unique non-negative identifier derived from
	// the generation timestamp, resolved path, and frequency. Collisions
	// are possible but rare and tolerated.
	ID int64 `json:"id"`

	Log *LogEntry `json:"log"`

	// Anomaly is the classifier's ground-truth attack flag.
	Anomaly bool `json:"anomaly"`

	// Score is the verdict severity rounded to 3 decimals.
	Score float64 `json:"score"`

	// Threat is the verdict reason shown to the player after the fact.
	Threat string `json:"threat"`
}

// Decision action values. ActionBlock marks the entry as an attack,
// ActionPass marks it as false-alarm traffic.
const (
	ActionBlock = "attack"
	ActionPass  = "false"
)

// Decision is a player's block/pass verdict for a broadcast log entry,
// received on the action endpoint.
type Decision struct {
	ID int64 `json:"id" validate:"min=0"`

	// Action is "attack" (block it) or "false" (pass it).
	Action string `json:"action" validate:"required,oneof=attack false"`

	// RealAnomaly echoes the ground-truth flag from the broadcast the
	// decision refers to.
	RealAnomaly bool `json:"real_anomaly"`
}

// ScoreReply is the reply to a scored decision.
type ScoreReply struct {
	Points int `json:"points"`
}

// GameStats is a point-in-time snapshot of engine counters, served by the
// stats endpoint.
type GameStats struct {
	EntriesGenerated  int64 `json:"entries_generated"`
	AttacksGenerated  int64 `json:"attacks_generated"`
	DecisionsScored   int64 `json:"decisions_scored"`
	CorrectDecisions  int64 `json:"correct_decisions"`
	StreamSubscribers int   `json:"stream_subscribers"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	Uptime            float64 `json:"uptime_seconds"`
	StreamSubscribers int     `json:"stream_subscribers"`
	ActionConnections int     `json:"action_connections"`
}

// APIResponse is the standardized response wrapper used by all REST
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

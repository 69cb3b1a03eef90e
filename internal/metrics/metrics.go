// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package metrics provides Prometheus instrumentation for the simulator:
// log generation, classification verdicts, WebSocket fan-out, decision
// scoring, and API request handling.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation metrics
	LogsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_logs_generated_total",
			Help: "Total number of synthetic log entries generated",
		},
		[]string{"kind"}, // "attack", "benign"
	)

	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_verdicts_total",
			Help: "Total number of classification verdicts by reason",
		},
		[]string{"reason"},
	)

	CycleDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "guardian_cycle_delay_seconds",
			Help:    "Randomized inter-log delay per distribution cycle",
			Buckets: []float64{0.5, 0.8, 1.1, 1.4, 1.7, 2.0, 2.3},
		},
	)

	// WebSocket metrics
	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "guardian_stream_subscribers",
			Help: "Current number of connected log stream subscribers",
		},
	)

	ActionConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "guardian_action_connections",
			Help: "Current number of connected action (decision) clients",
		},
	)

	BroadcastsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_broadcasts_delivered_total",
			Help: "Total number of payloads queued to subscriber connections",
		},
	)

	BroadcastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_broadcasts_dropped_total",
			Help: "Total number of payloads dropped due to slow or gone subscribers",
		},
	)

	// Scoring metrics
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_decisions_total",
			Help: "Total number of player decisions by outcome",
		},
		[]string{"outcome"}, // "correct", "incorrect", "duplicate"
	)

	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_points_awarded_total",
			Help: "Total positive points awarded to players",
		},
	)

	PointsDeducted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardian_points_deducted_total",
			Help: "Total points deducted from players",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardian_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guardian_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "guardian_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGenerated records one synthesized entry and its verdict. The kind
// reflects the generation branch (the sector tag), not the verdict, so the
// fail-closed default rule stays visible as a benign-kind attack verdict.
func RecordGenerated(kind, reason string) {
	LogsGenerated.WithLabelValues(kind).Inc()
	VerdictsTotal.WithLabelValues(reason).Inc()
}

// RecordDecision records a scored (or deduplicated) player decision.
func RecordDecision(outcome string, points int) {
	DecisionsTotal.WithLabelValues(outcome).Inc()
	switch {
	case points > 0:
		PointsAwarded.Add(float64(points))
	case points < 0:
		PointsDeducted.Add(float64(-points))
	}
}

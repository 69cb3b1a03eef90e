// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msabenda/api-guardian-game/internal/models"
)

func TestClassifyCascade(t *testing.T) {
	tests := []struct {
		name       string
		entry      *models.LogEntry
		wantAttack bool
		wantScore  float64
		wantReason string
	}{
		{
			name:       "flood above threshold",
			entry:      &models.LogEntry{Freq: 601, IP: "8.8.8.8", UserAgent: "Mozilla/5.0", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  2.8,
			wantReason: ReasonDDoSFlood,
		},
		{
			name:       "exactly at flood threshold is not a flood",
			entry:      &models.LogEntry{Freq: 600, IP: "8.8.8.8", UserAgent: "", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  1.2,
			wantReason: ReasonUnclassified,
		},
		{
			name:       "known malicious IP",
			entry:      &models.LogEntry{Freq: 50, IP: "185.23.45.67", UserAgent: "Mozilla/5.0", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  2.9,
			wantReason: ReasonMaliciousIP,
		},
		{
			name:       "second malicious IP",
			entry:      &models.LogEntry{Freq: 10, IP: "45.79.123.45", UserAgent: "", Path: "/"},
			wantAttack: true,
			wantScore:  2.9,
			wantReason: ReasonMaliciousIP,
		},
		{
			name:       "botnet agent",
			entry:      &models.LogEntry{Freq: 50, IP: "8.8.8.8", UserAgent: "BotNet/2.1", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  2.7,
			wantReason: ReasonMaliciousBot,
		},
		{
			name:       "python urllib agent",
			entry:      &models.LogEntry{Freq: 5, IP: "8.8.8.8", UserAgent: "Python-urllib/3.9", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  2.7,
			wantReason: ReasonMaliciousBot,
		},
		{
			name:       "sketchy path pattern",
			entry:      &models.LogEntry{Freq: 50, IP: "8.8.8.8", UserAgent: "Mozilla/5.0", Path: "/v1/users/999999/profile"},
			wantAttack: true,
			wantScore:  2.5,
			wantReason: ReasonSketchyPath,
		},
		{
			name:       "sketchy path is case insensitive",
			entry:      &models.LogEntry{Freq: 50, IP: "8.8.8.8", UserAgent: "Mozilla/5.0", Path: "/ADMIN/DEBUG"},
			wantAttack: true,
			wantScore:  2.5,
			wantReason: ReasonSketchyPath,
		},
		{
			name:       "sql injection fragment",
			entry:      &models.LogEntry{Freq: 10, IP: "8.8.8.8", UserAgent: "Mozilla/5.0", Path: "/v1/search?q=' UNION SELECT"},
			wantAttack: true,
			wantScore:  2.5,
			wantReason: ReasonSketchyPath,
		},
		{
			name:       "externally supplied threat score passes through",
			entry:      &models.LogEntry{Freq: 50, IP: "8.8.8.8", UserAgent: "Mozilla/5.0", Path: "/v1/orders", Score: 1.7},
			wantAttack: true,
			wantScore:  1.7,
			wantReason: ReasonAIThreat,
		},
		{
			name:       "threat score exactly 1.0 does not trigger",
			entry:      &models.LogEntry{Freq: 50, IP: "192.168.1.100", UserAgent: "Mozilla/5.0", Path: "/v1/orders", Score: 1.0},
			wantAttack: false,
			wantScore:  0.1,
			wantReason: ReasonTrustedSource,
		},
		{
			name:       "private range trusted",
			entry:      &models.LogEntry{Freq: 50, IP: "192.168.1.100", UserAgent: "curl/8.0", Path: "/v1/orders"},
			wantAttack: false,
			wantScore:  0.1,
			wantReason: ReasonTrustedSource,
		},
		{
			name:       "loopback trusted",
			entry:      &models.LogEntry{Freq: 250, IP: "127.0.0.1", UserAgent: "", Path: "/v1/orders"},
			wantAttack: false,
			wantScore:  0.1,
			wantReason: ReasonTrustedSource,
		},
		{
			name:       "browser at plausible rate",
			entry:      &models.LogEntry{Freq: 300, IP: "8.8.8.8", UserAgent: "Mozilla/5.0 (Windows NT 10.0)", Path: "/v1/orders"},
			wantAttack: false,
			wantScore:  0.05,
			wantReason: ReasonBrowser,
		},
		{
			name:       "browser above benign limit falls through",
			entry:      &models.LogEntry{Freq: 301, IP: "8.8.8.8", UserAgent: "Chrome/120.0", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  1.2,
			wantReason: ReasonUnclassified,
		},
		{
			name:       "low rate clean path normal traffic",
			entry:      &models.LogEntry{Freq: 120, IP: "8.8.8.8", UserAgent: "curl/8.0", Path: "/v1/orders"},
			wantAttack: false,
			wantScore:  0.08,
			wantReason: ReasonNormalTraffic,
		},
		{
			name:       "fail closed default",
			entry:      &models.LogEntry{Freq: 450, IP: "8.8.8.8", UserAgent: "curl/8.0", Path: "/v1/orders"},
			wantAttack: true,
			wantScore:  1.2,
			wantReason: ReasonUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Classify(tt.entry)
			assert.Equal(t, tt.wantAttack, verdict.IsAttack)
			assert.InDelta(t, tt.wantScore, verdict.Score, 1e-9)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

// Order matters: an entry matching several rules must take the first one.
func TestClassifyPriority(t *testing.T) {
	// Flood wins over malicious IP, bot agent, and sketchy path combined.
	verdict := Classify(&models.LogEntry{
		Freq:      900,
		IP:        "185.23.45.67",
		UserAgent: "BotNet/2.1",
		Path:      "/admin/debug",
	})
	assert.Equal(t, ReasonDDoSFlood, verdict.Reason)

	// Malicious IP wins over bot agent and sketchy path.
	verdict = Classify(&models.LogEntry{
		Freq:      100,
		IP:        "185.23.45.67",
		UserAgent: "BotNet/2.1",
		Path:      "/admin/debug",
	})
	assert.Equal(t, ReasonMaliciousIP, verdict.Reason)

	// Bot agent wins over sketchy path.
	verdict = Classify(&models.LogEntry{
		Freq:      100,
		IP:        "8.8.8.8",
		UserAgent: "BotNet/2.1",
		Path:      "/admin/debug",
	})
	assert.Equal(t, ReasonMaliciousBot, verdict.Reason)

	// Sketchy path wins over trusted source; whitelists never shadow
	// attack signatures.
	verdict = Classify(&models.LogEntry{
		Freq:      100,
		IP:        "192.168.1.100",
		UserAgent: "Mozilla/5.0",
		Path:      "/admin/debug",
	})
	assert.Equal(t, ReasonSketchyPath, verdict.Reason)

	// Trusted source wins over browser whitelist.
	verdict = Classify(&models.LogEntry{
		Freq:      100,
		IP:        "192.168.1.100",
		UserAgent: "Mozilla/5.0",
		Path:      "/v1/orders",
	})
	assert.Equal(t, ReasonTrustedSource, verdict.Reason)
}

func TestClassifyNilEntry(t *testing.T) {
	verdict := Classify(nil)
	assert.False(t, verdict.IsAttack)
	assert.Equal(t, ReasonNormalTraffic, verdict.Reason)
}

func TestClassifyIsDeterministic(t *testing.T) {
	entry := &models.LogEntry{Freq: 450, IP: "8.8.8.8", UserAgent: "curl/8.0", Path: "/v1/orders"}
	first := Classify(entry)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(entry))
	}
}

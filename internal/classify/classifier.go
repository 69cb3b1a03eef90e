// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package classify implements the classification rule cascade that labels a
// log entry as attack or benign with a severity score and a human-readable
// reason.
//
// The cascade is an ordered decision procedure: the first matching rule
// wins, and the order is a deliberate priority, not arbitrary. Rules 1-5
// are hard attack signatures that override everything, rules 6-8 whitelist
// known-safe shapes, and the final rule is a fail-closed default: unknown
// traffic is flagged, never silently passed.
//
// Classify is a pure function. The reason strings are part of the
// observable contract: viewers display them as the ground-truth label after
// a decision, so they must not change.
package classify

import (
	"strings"

	"github.com/msabenda/api-guardian-game/internal/models"
)

// Rule reason labels, in cascade order.
const (
	ReasonDDoSFlood     = "DDoS Flood (>600 RPM)"
	ReasonMaliciousIP   = "Known Malicious IP"
	ReasonMaliciousBot  = "Malicious Bot Detected"
	ReasonSketchyPath   = "Suspicious Path Pattern"
	ReasonAIThreat      = "AI Threat Detection"
	ReasonTrustedSource = "Internal Trusted Source"
	ReasonBrowser       = "Legitimate Browser Traffic"
	ReasonNormalTraffic = "Normal Traffic Pattern"
	ReasonUnclassified  = "Unclassified Suspicious Activity"
)

// floodThresholdRPM is the rate above which traffic is treated as a flood,
// and benignRPMLimit the rate up to which whitelisting rules apply.
const (
	floodThresholdRPM = 600
	benignRPMLimit    = 300
)

// maliciousIPs is the fixed set of known attacker addresses.
var maliciousIPs = map[string]struct{}{
	"185.23.45.67": {},
	"45.79.123.45": {},
}

// botAgents are user-agent substrings that always indicate automation used
// by the canned attack patterns.
var botAgents = []string{"BotNet", "Python-urllib"}

// browserSignatures identify real browsers for the whitelist rule.
var browserSignatures = []string{"Mozilla/5.0", "Chrome/", "Safari/"}

// sketchyPathPatterns are case-insensitive substrings that mark a request
// path as a probe or exploit attempt.
var sketchyPathPatterns = []string{
	"999999", "inject", "admin/debug", "sqlmap", "union select", "1=1", "';--", "drop table",
	"brute", "debug", "config", "backup", "test", "internal", "sql", "shell",
}

// hasSketchyPath reports whether the path contains any probe substring.
func hasSketchyPath(path string) bool {
	lower := strings.ToLower(path)
	for _, pattern := range sketchyPathPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Classify evaluates the rule cascade against one log entry and returns the
// verdict. Missing fields carry their zero values and are never an error; a
// nil entry is treated as an all-zero entry (an empty path is not sketchy
// and freq 0 is under the benign limit, so it lands on rule 8).
func Classify(entry *models.LogEntry) models.Verdict {
	if entry == nil {
		entry = &models.LogEntry{}
	}

	// Rule 1: request flood.
	if entry.Freq > floodThresholdRPM {
		return models.Verdict{IsAttack: true, Score: 2.8, Reason: ReasonDDoSFlood}
	}

	// Rule 2: known malicious source address.
	if _, evil := maliciousIPs[entry.IP]; evil {
		return models.Verdict{IsAttack: true, Score: 2.9, Reason: ReasonMaliciousIP}
	}

	// Rule 3: bot agent signature.
	if containsAny(entry.UserAgent, botAgents) {
		return models.Verdict{IsAttack: true, Score: 2.7, Reason: ReasonMaliciousBot}
	}

	// Rule 4: probe or exploit path.
	if hasSketchyPath(entry.Path) {
		return models.Verdict{IsAttack: true, Score: 2.5, Reason: ReasonSketchyPath}
	}

	// Rule 5: externally supplied threat score, passed through verbatim.
	if entry.Score > 1.0 {
		return models.Verdict{IsAttack: true, Score: entry.Score, Reason: ReasonAIThreat}
	}

	// Rule 6: private-range or loopback sources are trusted.
	if strings.HasPrefix(entry.IP, "192.168.") || entry.IP == "127.0.0.1" {
		return models.Verdict{IsAttack: false, Score: 0.1, Reason: ReasonTrustedSource}
	}

	// Rule 7: real browser at a plausible rate.
	if containsAny(entry.UserAgent, browserSignatures) && entry.Freq <= benignRPMLimit {
		return models.Verdict{IsAttack: false, Score: 0.05, Reason: ReasonBrowser}
	}

	// Rule 8: low-rate traffic on a clean path.
	if entry.Freq <= benignRPMLimit && !hasSketchyPath(entry.Path) {
		return models.Verdict{IsAttack: false, Score: 0.08, Reason: ReasonNormalTraffic}
	}

	// Fail-closed default: anything unmatched is flagged.
	return models.Verdict{IsAttack: true, Score: 1.2, Reason: ReasonUnclassified}
}

// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package synth produces synthetic HTTP access-log entries, weighted
// between benign industry traffic and canned attack patterns from the
// threat catalog.
package synth

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/msabenda/api-guardian-game/internal/catalog"
	"github.com/msabenda/api-guardian-game/internal/models"
)

// DefaultAttackRatio is the long-run fraction of generated entries drawn
// from an attack pattern.
const DefaultAttackRatio = 0.15

// pathToken is the substitution slot in catalog path templates.
const pathToken = "{}"

// postMarkers force the POST method when present in the resolved path.
var postMarkers = []string{"login", "add", "inject"}

// Synthesizer generates one log entry per Generate call. It is safe for
// concurrent use; the random source is guarded by a mutex because
// math/rand.Rand is not.
type Synthesizer struct {
	mu          sync.Mutex
	rng         *rand.Rand
	attackRatio float64
	now         func() time.Time
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithAttackRatio overrides the attack weighting. Values outside [0, 1]
// are clamped.
func WithAttackRatio(ratio float64) Option {
	return func(s *Synthesizer) {
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		s.attackRatio = ratio
	}
}

// WithRand replaces the random source. Tests use this for reproducible
// draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *Synthesizer) {
		s.rng = rng
	}
}

// WithClock replaces the timestamp source used for identifier derivation.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// New creates a synthesizer seeded from the current time.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		attackRatio: DefaultAttackRatio,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces one log entry together with its broadcast identifier.
func (s *Synthesizer) Generate() (*models.LogEntry, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry *models.LogEntry
	if s.rng.Float64() < s.attackRatio {
		entry = s.generateAttack()
	} else {
		entry = s.generateBenign()
	}

	return entry, deriveID(s.now(), entry.Path, entry.Freq)
}

// generateAttack draws uniformly from the attack pattern catalog. The
// method is POST when the resolved path contains a mutation marker, which
// mirrors how the canned attacks actually probe their targets.
func (s *Synthesizer) generateAttack() *models.LogEntry {
	pattern := catalog.AttackPatterns[s.rng.Intn(len(catalog.AttackPatterns))]
	path := s.resolvePath(pattern.Paths[s.rng.Intn(len(pattern.Paths))], 10000, 99999)

	method := "GET"
	if containsAnyFold(path, postMarkers) {
		method = "POST"
	}

	return &models.LogEntry{
		Method:    method,
		Path:      path,
		IP:        pattern.IP,
		UserAgent: pattern.UserAgent,
		Freq:      s.intInRange(pattern.RPM),
		Sector:    models.SectorAttack,
	}
}

// generateBenign draws uniformly from the industry catalog.
func (s *Synthesizer) generateBenign() *models.LogEntry {
	industry := catalog.Industries[s.rng.Intn(len(catalog.Industries))]
	path := s.resolvePath(industry.Paths[s.rng.Intn(len(industry.Paths))], 1000, 99999)

	return &models.LogEntry{
		Method:    "GET",
		Path:      path,
		IP:        industry.NormalIPs[s.rng.Intn(len(industry.NormalIPs))],
		UserAgent: catalog.BenignUserAgents[s.rng.Intn(len(catalog.BenignUserAgents))],
		Freq:      s.intInRange(industry.NormalRPM),
		Sector:    industry.Name,
	}
}

// resolvePath substitutes the template slot with a random integer in
// [min, max]. Templates without a slot pass through unchanged.
func (s *Synthesizer) resolvePath(template string, min, max int) string {
	if !strings.Contains(template, pathToken) {
		return template
	}
	token := strconv.Itoa(min + s.rng.Intn(max-min+1))
	return strings.Replace(template, pathToken, token, 1)
}

// intInRange returns a uniform integer in the inclusive range.
func (s *Synthesizer) intInRange(r catalog.RPMRange) int {
	return r.Min + s.rng.Intn(r.Max-r.Min+1)
}

// containsAnyFold reports whether the lowercased string contains any of
// the given substrings.
func containsAnyFold(str string, subs []string) bool {
	lower := strings.ToLower(str)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// deriveID reduces timestamp, resolved path, and frequency to a
// non-negative integer. Uniqueness is best-effort only; the scorer's dedup
// set tolerates the rare collision.
func deriveID(ts time.Time, path string, freq int) int64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatInt(ts.UnixNano(), 10)))
	h.Write([]byte(path))
	h.Write([]byte(strconv.Itoa(freq)))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

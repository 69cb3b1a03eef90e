// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

// Package catalog holds the static threat catalog: benign industry traffic
// profiles and canned attack pattern templates. Pure data, no behavior; the
// synthesizer draws from it on every cycle.
//
// Path templates may contain a "{}" slot that the synthesizer substitutes
// with a randomized numeric token. RPM ranges are inclusive on both ends.
package catalog

// RPMRange is an inclusive requests-per-minute range.
type RPMRange struct {
	Min int
	Max int
}

// Industry describes the normal traffic shape of one business sector.
type Industry struct {
	Name      string
	Paths     []string
	NormalIPs []string
	NormalRPM RPMRange
}

// AttackPattern is one canned attack template with fixed source address,
// user agent, and an elevated RPM range.
type AttackPattern struct {
	Type      string
	Paths     []string
	IP        string
	UserAgent string
	RPM       RPMRange
}

// Industries lists the 12 benign traffic profiles with realistic RPM ranges.
var Industries = []Industry{
	{Name: "Financial Services", Paths: []string{"/v1/accounts/{}/balance", "/v1/auth/login"}, NormalIPs: []string{"192.168.1.100"}, NormalRPM: RPMRange{20, 120}},
	{Name: "E-commerce & Retail", Paths: []string{"/api/v2/cart/add", "/api/v2/products/{}"}, NormalIPs: []string{"203.0.113.45"}, NormalRPM: RPMRange{30, 300}},
	{Name: "Transportation & Logistics", Paths: []string{"/tracking/{}"}, NormalIPs: []string{"8.8.8.8"}, NormalRPM: RPMRange{15, 80}},
	{Name: "Social Media", Paths: []string{"/api/v3/feed"}, NormalIPs: []string{"192.168.1.100"}, NormalRPM: RPMRange{60, 400}},
	{Name: "Entertainment & Media", Paths: []string{"/api/v1/stream/start"}, NormalIPs: []string{"8.8.8.8"}, NormalRPM: RPMRange{50, 200}},
	{Name: "Healthcare & Science", Paths: []string{"/api/v1/patients/{}/record"}, NormalIPs: []string{"10.0.0.20"}, NormalRPM: RPMRange{10, 60}},
	{Name: "Cloud Computing", Paths: []string{"/api/v1/instances/start"}, NormalIPs: []string{"10.0.0.5"}, NormalRPM: RPMRange{40, 300}},
	{Name: "Artificial Intelligence", Paths: []string{"/api/v1/models/predict"}, NormalIPs: []string{"10.0.0.30"}, NormalRPM: RPMRange{30, 180}},
	{Name: "Government & Public Services", Paths: []string{"/api/v1/citizen/verify"}, NormalIPs: []string{"203.0.113.45"}, NormalRPM: RPMRange{10, 50}},
	{Name: "Travel & Hospitality", Paths: []string{"/api/v1/bookings/flight"}, NormalIPs: []string{"192.168.1.100"}, NormalRPM: RPMRange{20, 150}},
	{Name: "Telecommunications", Paths: []string{"/api/v1/billing/invoice"}, NormalIPs: []string{"10.0.0.15"}, NormalRPM: RPMRange{15, 100}},
	{Name: "Internal Operations", Paths: []string{"/api/v1/employees/directory"}, NormalIPs: []string{"10.0.0.25"}, NormalRPM: RPMRange{5, 40}},
}

// AttackPatterns lists the 5 canned attack templates. Their IPs and user
// agents intentionally overlap the classifier's signature sets so that the
// cascade labels them reliably.
var AttackPatterns = []AttackPattern{
	{Type: "SQL_INJECTION", Paths: []string{"/v1/users/999999/inject", "/v1/users/union select 1"}, IP: "185.23.45.67", UserAgent: "BotNet/2.1", RPM: RPMRange{600, 1800}},
	{Type: "DDOS", Paths: []string{"/api/v2/cart/add", "/api/v3/feed"}, IP: "203.0.113.45", UserAgent: "Python-urllib/3.9", RPM: RPMRange{1800, 5000}},
	{Type: "BRUTE_FORCE", Paths: []string{"/v1/auth/login"}, IP: "185.23.45.67", UserAgent: "BotNet/2.1", RPM: RPMRange{1200, 3600}},
	{Type: "ADMIN_BYPASS", Paths: []string{"/admin/debug", "/__debug/info"}, IP: "45.79.123.45", UserAgent: "Go-http-client/1.1", RPM: RPMRange{800, 2000}},
	{Type: "DEBUG_EXPLOIT", Paths: []string{"/debug/config", "/internal/test"}, IP: "45.79.123.45", UserAgent: "Python-urllib/3.9", RPM: RPMRange{700, 1500}},
}

// BenignUserAgents is the fixed agent pool for benign entries.
var BenignUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
	"curl/7.68.0",
}

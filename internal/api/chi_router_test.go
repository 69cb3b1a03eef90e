// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msabenda/api-guardian-game/internal/config"
	"github.com/msabenda/api-guardian-game/internal/game"
	"github.com/msabenda/api-guardian-game/internal/models"
	"github.com/msabenda/api-guardian-game/internal/synth"
	ws "github.com/msabenda/api-guardian-game/internal/websocket"
)

// startTestServer stands up the full route tree backed by a running hub
// and engine, mirroring production wiring.
func startTestServer(t *testing.T, staticDir string) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	hub := ws.NewHub()
	registry := ws.NewActionRegistry()
	engine := game.NewEngine(synth.New(synth.WithAttackRatio(cfg.Game.AttackRatio)), hub, game.Config{
		MinDelay:        time.Millisecond,
		MaxDelay:        2 * time.Millisecond,
		PointsCorrect:   cfg.Game.PointsCorrect,
		PointsIncorrect: cfg.Game.PointsIncorrect,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.RunWithContext(ctx) }()
	go func() { _ = engine.RunWithContext(ctx) }()

	handler := NewHandler(hub, registry, engine, cfg)
	chiMW := NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := NewRouter(handler, chiMW, staticDir)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string) (*http.Response, *models.APIResponse) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec // test-local URL
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var envelope models.APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp, &envelope
}

func TestRouterHealthRoutes(t *testing.T) {
	srv := startTestServer(t, "")

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		resp, envelope := getJSON(t, srv.URL+path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEqual(t, "error", envelope.Status, path)
	}
}

func TestRouterAPIRoutes(t *testing.T) {
	srv := startTestServer(t, "")

	resp, envelope := getJSON(t, srv.URL+"/api/v1/catalog/industries")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", envelope.Status)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"), "request id middleware must tag API responses")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	resp, envelope = getJSON(t, srv.URL+"/api/v1/game/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", envelope.Status)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	srv := startTestServer(t, "")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRouterStreamDeliversFirstPayload(t *testing.T) {
	srv := startTestServer(t, "")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// Connecting triggers an immediate cycle, so the first payload
	// arrives well before any randomized delay would elapse.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var payload models.BroadcastPayload
	require.NoError(t, json.Unmarshal(data, &payload))
	require.NotNil(t, payload.Log)
	assert.NotEmpty(t, payload.Log.Path)
	assert.NotEmpty(t, payload.Threat)
}

func TestRouterActionScoresDecision(t *testing.T) {
	srv := startTestServer(t, "")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/action"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	decision := models.Decision{ID: 42, Action: models.ActionBlock, RealAnomaly: true}
	data, err := json.Marshal(decision)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, replyData, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply models.ScoreReply
	require.NoError(t, json.Unmarshal(replyData, &reply))
	assert.Equal(t, 100, reply.Points)
}

func TestRouterStaticFallback(t *testing.T) {
	staticDir := t.TempDir()
	indexHTML := "<html><body>dashboard</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(indexHTML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o600))

	srv := startTestServer(t, staticDir)

	// A real file is served as-is.
	resp, err := http.Get(srv.URL + "/app.js")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log(1)", string(body))

	// Unknown paths fall back to index.html for client-side routing.
	resp, err = http.Get(srv.URL + "/some/client/route")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, indexHTML, string(body))
}

func TestRouterStaticRejectsNonGet(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("x"), 0o600))

	srv := startTestServer(t, staticDir)

	resp, err := http.Post(srv.URL+"/anything", "text/plain", strings.NewReader("body"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

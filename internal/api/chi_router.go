// API Guardian - Live Security Training Simulator
// Copyright 2026 M. Sabenda (msabenda)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/msabenda/api-guardian-game

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msabenda/api-guardian-game/internal/middleware"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	staticDir     string
}

// NewRouter creates a Router. staticDir is the directory served for
// non-API paths; pass "" to disable static serving.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, staticDir string) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		staticDir:     staticDir,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled everywhere

	// WebSocket endpoints. Deliberately outside the Prometheus middleware:
	// its response wrapper does not implement http.Hijacker, which the
	// upgrade needs. Connection counts are tracked by gauges instead.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitUpgrade())
		r.Get("/ws", router.handler.Stream)
		r.Get("/action", router.handler.Action)
	})

	// Health endpoints with permissive rate limiting for monitoring.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Read-only API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.RequestID))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/catalog/industries", router.handler.CatalogIndustries)
		r.Get("/catalog/attacks", router.handler.CatalogAttacks)
		r.Get("/game/stats", router.handler.GameStats)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Static dashboard fallback for all remaining paths.
	if router.staticDir != "" {
		r.NotFound(router.serveStatic)
	}

	return r
}

// serveStatic serves files from the static directory, falling back to
// index.html for unknown paths so client-side routing works. Path
// traversal is rejected before touching the filesystem.
func (router *Router) serveStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	reqPath := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
	if strings.Contains(reqPath, "..") {
		respondError(w, http.StatusBadRequest, "INVALID_PATH", "Invalid path", nil)
		return
	}

	if reqPath == "" || reqPath == "." {
		reqPath = "index.html"
	}

	fullPath := filepath.Join(router.staticDir, reqPath)
	if info, err := os.Stat(fullPath); err != nil || info.IsDir() {
		fullPath = filepath.Join(router.staticDir, "index.html")
	}

	http.ServeFile(w, r, fullPath)
}

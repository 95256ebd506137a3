// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/middleware"
)

// RouterConfig holds the cross-cutting HTTP configuration.
type RouterConfig struct {
	// CORS configuration. Origins default to empty, requiring explicit
	// configuration rather than shipping a wildcard.
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	// Rate limiting, per client IP.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultRouterConfig returns a secure default configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// healthRateLimit is the permissive per-IP budget for health endpoints,
// sized for frequent monitoring probes.
const healthRateLimit = 1000

// Router assembles the HTTP handler tree.
type Router struct {
	handler *Handler
	config  *RouterConfig
}

// NewRouter creates a router for the given handler set.
func NewRouter(handler *Handler, config *RouterConfig) *Router {
	if config == nil {
		config = DefaultRouterConfig()
	}
	return &Router{handler: handler, config: config}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.config.CORSAllowedOrigins,
		AllowedMethods: router.config.CORSAllowedMethods,
		AllowedHeaders: router.config.CORSAllowedHeaders,
		MaxAge:         router.config.CORSMaxAge,
	}))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	// Health endpoints get a permissive rate limit for monitoring.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.Limit(healthRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Core endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Post("/log", router.handler.IngestLog)
		r.Get("/profile", router.handler.GetProfile)
		r.Get("/profile/narrative", router.handler.GetNarrative)
		r.Get("/recommendations", router.handler.GetRecommendations)
		r.Get("/recommendations/upcoming", router.handler.GetUpcoming)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound(ErrCodeNotFound, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "method not allowed")
	})

	return r
}

// rateLimit builds the per-IP limiter for core endpoints.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		router.config.RateLimitRequests,
		router.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, req *http.Request) {
			metrics.APIRateLimitHits.Inc()
			NewResponseWriter(w, req).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
}

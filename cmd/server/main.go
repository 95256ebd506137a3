// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package main is the entry point for the Gustus server.
//
// Gustus is a self-hosted movie taste profiler. It ingests a personal
// watch log (CSV export), builds a preference profile from the rated
// films, resolves public ratings through a persistent cache backed by a
// metadata service, and serves ranked recommendations with plain-prose
// explanations over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading via Koanf v2 (env > file > defaults)
//  2. Rating cache: append-only CSV of resolved public ratings
//  3. Metadata client: rate-limited HTTP client, optionally wrapped in a
//     circuit breaker
//  4. Analysis pipeline: profile builder and recommendation engine
//  5. HTTP server: Chi router under a suture supervision tree
//
// # Configuration
//
// All settings have defaults except the metadata-service API key:
//
//	export TMDB_API_KEY=your-api-key
//	export HTTP_PORT=8642
//	export RATING_CACHE_PATH=/data/public_ratings.csv
//	./gustus
//
// A config file can be supplied via CONFIG_PATH or placed at
// /etc/gustus/config.yaml.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections and waits up to 10 seconds for in-flight
// requests to finish.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gustus/internal/analysis"
	"github.com/tomtom215/gustus/internal/api"
	"github.com/tomtom215/gustus/internal/config"
	"github.com/tomtom215/gustus/internal/ingest"
	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/profile"
	"github.com/tomtom215/gustus/internal/ratingcache"
	"github.com/tomtom215/gustus/internal/recommend"
	"github.com/tomtom215/gustus/internal/supervisor"
	"github.com/tomtom215/gustus/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger has to do.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("cache_path", cfg.Cache.Path).
		Bool("tmdb_key_set", cfg.TMDB.APIKey != "").
		Msg("Starting Gustus")

	analyzer, err := buildPipeline(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build analysis pipeline")
	}

	handler := api.NewHandler(
		ingest.NewReader(logging.Logger()),
		analyzer,
		cfg.Recommend.DefaultLimit,
		cfg.Recommend.MaxLimit,
		logging.Logger(),
	)
	routerCfg := api.DefaultRouterConfig()
	routerCfg.CORSAllowedOrigins = cfg.API.CORSOrigins
	routerCfg.RateLimitRequests = cfg.API.RateLimitRequests
	routerCfg.RateLimitWindow = cfg.API.RateLimitWindow
	routerCfg.RateLimitDisabled = cfg.API.RateLimitDisabled
	router := api.NewRouter(handler, routerCfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildPipeline wires the analysis components from configuration.
func buildPipeline(cfg *config.Config) (*analysis.Analyzer, error) {
	store, err := ratingcache.NewStore(cfg.Cache.Path, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("rating cache: %w", err)
	}

	builder, err := profile.NewBuilder(cfg.BuilderConfig())
	if err != nil {
		return nil, fmt.Errorf("profile builder: %w", err)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	client, err := tmdb.NewClient(cfg.TMDBClientConfig(), logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("metadata client: %w", err)
	}
	var meta tmdb.MetadataClient = client
	if cfg.TMDB.CircuitBreaker {
		meta = tmdb.NewCircuitBreakerClient(client)
		logging.Info().Msg("Metadata client wrapped with circuit breaker")
	}

	return analysis.NewAnalyzer(cfg.AnalysisRunConfig(), meta, store, builder, engine, logging.Logger())
}

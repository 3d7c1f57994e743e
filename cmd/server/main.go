// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/poimap/internal/api"
	"github.com/tomtom215/poimap/internal/config"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/supervisor"
	"github.com/tomtom215/poimap/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting POIMap with supervisor tree")
	if cfg.IsDefaultJWTSecret() {
		logging.Warn().Msg("JWT_SECRET is the development default; set a real secret before exposing this server")
	}

	pipeline, err := initPipeline(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize enrichment pipeline")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	accounts, store, err := initAccounts(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize user store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing user store")
		}
	}()

	jwtManager, err := initJWT(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	opts := []api.HandlerOption{
		api.WithCacheStats(pipeline.entities),
		api.WithBreaker("wikidata", pipeline.fetcher),
	}
	if pipeline.summaries != nil {
		opts = append(opts, api.WithBreaker("wikipedia", pipeline.summaries))
	}
	handler := api.NewHandler(pipeline.catalog, pipeline.enricher, jwtManager, accounts, opts...)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromServer(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
	tree.AddMonitorService(services.NewCacheMonitorService("entity", pipeline.entities, 0))

	logging.Info().
		Int("categories", len(pipeline.catalog.Categories())).
		Int("pois", pipeline.catalog.Size()).
		Bool("summaries", pipeline.summaries != nil).
		Str("user_store", cfg.Security.UserStore).
		Msg("Starting supervisor tree...")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

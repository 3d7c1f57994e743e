// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/poimap/internal/auth"
	"github.com/tomtom215/poimap/internal/cache"
	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/config"
	"github.com/tomtom215/poimap/internal/enrich"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
	"github.com/tomtom215/poimap/internal/wikidata"
)

// pipeline holds the enrichment components shared by the HTTP handlers.
type pipeline struct {
	catalog   *catalog.Catalog
	entities  *cache.Cache[*wikidata.Document]
	fetcher   *wikidata.Fetcher
	summaries *wikidata.SummaryFetcher // nil when summaries are disabled
	enricher  *enrich.Enricher
}

func initPipeline(cfg *config.Config) (*pipeline, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.Path != "" {
		logging.Info().Str("path", cfg.Catalog.Path).Int("pois", cat.Size()).Msg("Loaded catalog file")
	}

	entities := cache.New[*wikidata.Document](
		cfg.Wikidata.CacheTTL,
		cache.WithObserver[*wikidata.Document]("entity", metrics.CacheObserver{}),
	)

	fetcher := wikidata.NewFetcher(wikidata.FetcherConfig{
		Endpoint:          cfg.Wikidata.Endpoint,
		Languages:         cfg.Wikidata.Languages,
		UserAgent:         cfg.Wikidata.UserAgent,
		Timeout:           cfg.Wikidata.Timeout,
		RequestsPerSecond: cfg.Wikidata.RequestsPerSecond,
		Burst:             cfg.Wikidata.Burst,
		Breaker:           wikidata.BreakerConfig(cfg.Wikidata.Breaker),
	}, entities)

	parser := wikidata.NewParser(wikidata.ParserConfig{
		Languages:      cfg.Wikidata.Languages,
		Wikis:          cfg.Wikidata.Wikis,
		CommonsBaseURL: cfg.Wikidata.CommonsBaseURL,
		EntityBaseURL:  cfg.Wikidata.EntityBaseURL,
		ImageWidth:     cfg.Wikidata.ImageWidth,
	})

	p := &pipeline{catalog: cat, entities: entities, fetcher: fetcher}

	// enrich.New treats a nil interface as "no summaries"; never pass a typed nil.
	var summaries enrich.SummaryFetcher
	if cfg.Summary.Enabled {
		p.summaries = wikidata.NewSummaryFetcher(wikidata.SummaryConfig{
			RESTBaseURL:      cfg.Summary.RESTBaseURL,
			PrimaryLanguage:  cfg.Summary.PrimaryLanguage,
			FallbackLanguage: cfg.Summary.FallbackLanguage,
			UserAgent:        cfg.Wikidata.UserAgent,
			Timeout:          cfg.Summary.Timeout,
			Breaker:          wikidata.BreakerConfig(cfg.Summary.Breaker),
		})
		summaries = p.summaries
	}

	gallery := enrich.DefaultConfig()
	if cfg.Wikidata.GalleryWidth > 0 {
		gallery.GalleryWidth = cfg.Wikidata.GalleryWidth
	}
	p.enricher = enrich.New(fetcher, parser, summaries, enrich.WithConfig(gallery))

	return p, nil
}

// initAccounts opens the configured user store. The caller owns the returned store.
func initAccounts(ctx context.Context, cfg *config.Config) (*auth.Accounts, auth.UserStore, error) {
	store, err := auth.NewUserStore(&cfg.Security)
	if err != nil {
		return nil, nil, err
	}

	accounts := auth.NewAccounts(store, cfg.Security.BcryptCost)
	if cfg.Security.SeedDemoUser {
		if err := accounts.SeedDemoUser(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to seed demo user: %w", err)
		}
	}
	return accounts, store, nil
}

func initJWT(cfg *config.Config) (*auth.JWTManager, error) {
	return auth.NewJWTManager(&cfg.Security)
}

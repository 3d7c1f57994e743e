// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/poimap/internal/cache"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

const upstreamWikidata = "wikidata"

// FetcherConfig configures the entity fetcher.
type FetcherConfig struct {
	Endpoint          string // wbgetentities API, e.g. https://www.wikidata.org/w/api.php
	Languages         []string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64 // outbound pacing; <= 0 disables
	Burst             int
	Breaker           BreakerConfig
}

// DefaultFetcherConfig matches the public Wikidata API.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Endpoint:          "https://www.wikidata.org/w/api.php",
		Languages:         []string{"el", "en"},
		UserAgent:         DefaultUserAgent,
		Timeout:           15 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
		Breaker:           DefaultBreakerConfig(),
	}
}

// EntityCache is the memo the fetcher reads and fills.
type EntityCache interface {
	Get(id string) (*Document, bool)
	Set(id string, doc *Document)
}

var _ EntityCache = (*cache.Cache[*Document])(nil)

// Fetcher retrieves raw entity documents, consulting the cache first.
//
// Fetch never returns an error: every failure is logged, counted and reported as
// absent. Callers treat "not ok" as the only failure signal.
type Fetcher struct {
	cfg     FetcherConfig
	client  *http.Client
	cache   EntityCache
	breaker *Breaker
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher. The default http.Client policy follows redirects.
func NewFetcher(cfg FetcherConfig, entities EntityCache) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   entities,
		breaker: NewBreaker(upstreamWikidata, cfg.Breaker),
		limiter: newLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// Fetch returns the document for id from cache or network.
func (f *Fetcher) Fetch(ctx context.Context, id string) (*Document, bool) {
	if id == "" {
		return nil, false
	}
	if doc, ok := f.cache.Get(id); ok {
		return doc, true
	}

	start := time.Now()
	doc, err := f.fetch(ctx, id)
	metrics.RecordUpstream(upstreamWikidata, outcome(err), time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("wikidata_id", id).
			Str("outcome", outcome(err)).
			Msg("Wikidata entity fetch failed")
		return nil, false
	}

	f.cache.Set(id, doc)
	logging.Ctx(ctx).Debug().
		Str("wikidata_id", id).
		Dur("duration", time.Since(start)).
		Msg("Fetched Wikidata entity")
	return doc, true
}

func (f *Fetcher) fetch(ctx context.Context, id string) (*Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", errThrottled, err)
	}

	reqURL := f.EntityURL(id)
	body, err := f.breaker.Execute(func() ([]byte, error) {
		return getBody(ctx, f.client, upstreamWikidata, reqURL, f.cfg.UserAgent)
	})
	if err != nil {
		return nil, err
	}

	doc, err := DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("%w: wikidata entity %s: %w", errDecode, id, err)
	}
	return doc, nil
}

// EntityURL is the deterministic request URL for id.
func (f *Fetcher) EntityURL(id string) string {
	q := url.Values{}
	q.Set("action", "wbgetentities")
	q.Set("ids", id)
	q.Set("format", "json")
	if len(f.cfg.Languages) > 0 {
		q.Set("languages", strings.Join(f.cfg.Languages, "|"))
	}
	q.Set("origin", "*")
	return f.cfg.Endpoint + "?" + q.Encode()
}

// BreakerState reports the entity breaker state for health checks.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State()
}

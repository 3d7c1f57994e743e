// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
	"github.com/tomtom215/poimap/internal/wikidata"
)

// ErrDetailUnavailable is returned by EnrichDetail when the entity cannot be fetched.
var ErrDetailUnavailable = errors.New("wikidata unavailable")

// EntityFetcher returns a raw document or reports it absent.
type EntityFetcher interface {
	Fetch(ctx context.Context, id string) (*wikidata.Document, bool)
}

// RecordParser builds display records and Commons file URLs.
type RecordParser interface {
	Parse(id string, doc *wikidata.Document) wikidata.Record
	CommonsFileURL(filename string, width int) string
}

// SummaryFetcher returns a short summary for an article URL or reports it absent.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context, articleURL string) (string, bool)
}

// Listed is one POI that made it into a listing. Record.Coord is always set.
type Listed struct {
	POI    catalog.POI
	Record wikidata.Record
}

// Detail is the single-POI view.
type Detail struct {
	POI              catalog.POI
	Record           wikidata.Record
	Images           []string
	ExtraText        string
	ShortDescription string
}

// Config holds image gallery settings for detail views.
type Config struct {
	GalleryWidth   int // width of extra image URLs
	MaxExtraImages int // extras appended after the primary image
	MinImages      int // pad target when at least one image exists
}

// DefaultConfig matches the mobile client's three-image slider.
func DefaultConfig() Config {
	return Config{
		GalleryWidth:   1100,
		MaxExtraImages: 3,
		MinImages:      3,
	}
}

// Enricher runs the fetch and parse pipeline over catalog POIs.
// Network calls are made one at a time, in catalog order.
type Enricher struct {
	fetcher   EntityFetcher
	parser    RecordParser
	summaries SummaryFetcher
	sink      Sink
	cfg       Config
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithSink replaces the default log-and-count diagnostics sink.
func WithSink(sink Sink) Option {
	return func(e *Enricher) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithConfig overrides gallery settings.
func WithConfig(cfg Config) Option {
	return func(e *Enricher) {
		e.cfg = cfg
	}
}

// New creates an Enricher. summaries may be nil to disable summary lookup.
func New(fetcher EntityFetcher, parser RecordParser, summaries SummaryFetcher, opts ...Option) *Enricher {
	e := &Enricher{
		fetcher:   fetcher,
		parser:    parser,
		summaries: summaries,
		sink:      LogSink{},
		cfg:       DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// itemResult is either a record or the reason the POI was dropped.
type itemResult struct {
	listed Listed
	skip   *Skip
}

// EnrichCategory enriches pois in order. POIs whose entity cannot be fetched,
// that have no coordinates, or whose processing panics are dropped and reported
// to the sink; the rest keep their relative order.
func (e *Enricher) EnrichCategory(ctx context.Context, pois []catalog.POI) []Listed {
	metrics.RecordEnrichmentBatch(len(pois))

	out := make([]Listed, 0, len(pois))
	for _, poi := range pois {
		res := e.enrichListed(ctx, poi)
		if res.skip != nil {
			e.sink.Skipped(ctx, *res.skip)
			continue
		}
		out = append(out, res.listed)
	}
	return out
}

func (e *Enricher) enrichListed(ctx context.Context, poi catalog.POI) (res itemResult) {
	defer func() {
		if r := recover(); r != nil {
			res = itemResult{skip: &Skip{POI: poi, Reason: SkipPanic, Detail: fmt.Sprint(r)}}
		}
	}()

	doc, ok := e.fetcher.Fetch(ctx, poi.WikidataID)
	if !ok {
		return itemResult{skip: &Skip{POI: poi, Reason: SkipFetchUnavailable}}
	}

	record := e.parser.Parse(poi.WikidataID, doc)
	if record.Coord == nil {
		return itemResult{skip: &Skip{POI: poi, Reason: SkipMissingCoordinates}}
	}

	return itemResult{listed: Listed{POI: poi, Record: record}}
}

// EnrichDetail enriches one POI. An absent entity is ErrDetailUnavailable. The
// summary is looked up only when a Wikipedia link was resolved and falls back
// to the entity description.
func (e *Enricher) EnrichDetail(ctx context.Context, poi catalog.POI, extraImages []string) (*Detail, error) {
	doc, ok := e.fetcher.Fetch(ctx, poi.WikidataID)
	if !ok {
		metrics.RecordDetailUnavailable()
		return nil, fmt.Errorf("poi %s (%s): %w", poi.ID, poi.WikidataID, ErrDetailUnavailable)
	}

	record := e.parser.Parse(poi.WikidataID, doc)

	var summary string
	if record.WikipediaURL != "" && e.summaries != nil {
		if s, ok := e.summaries.FetchSummary(ctx, record.WikipediaURL); ok {
			summary = s
		}
	}
	if summary == "" {
		summary = record.Description
	}

	extras := extraImages
	if len(extras) > e.cfg.MaxExtraImages {
		extras = extras[:e.cfg.MaxExtraImages]
	}
	extraURLs := make([]string, 0, len(extras))
	for _, filename := range extras {
		extraURLs = append(extraURLs, e.parser.CommonsFileURL(filename, e.cfg.GalleryWidth))
	}

	logging.Ctx(ctx).Debug().
		Str("poi", poi.ID).
		Str("wikidata_id", poi.WikidataID).
		Int("facts", len(record.Facts)).
		Msg("Enriched POI detail")

	return &Detail{
		POI:              poi,
		Record:           record,
		Images:           BuildImages(record.ImageURL, extraURLs, e.cfg.MinImages),
		ExtraText:        ExtraText(record.Facts),
		ShortDescription: summary,
	}, nil
}

// BuildImages returns primary (if any) followed by extras. A non-empty list
// shorter than minImages is padded by repeating its first entry; an empty list
// stays empty.
func BuildImages(primary string, extras []string, minImages int) []string {
	images := make([]string, 0, max(minImages, len(extras)+1))
	if primary != "" {
		images = append(images, primary)
	}
	images = append(images, extras...)

	for len(images) > 0 && len(images) < minImages {
		images = append(images, images[0])
	}
	return images
}

// ExtraText renders facts as "Label: value" lines.
func ExtraText(facts []wikidata.Fact) string {
	if len(facts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(facts))
	for _, f := range facts {
		lines = append(lines, f.Label+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

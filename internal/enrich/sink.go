// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package enrich

import (
	"context"

	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

// SkipReason says why a POI was left out of a listing.
type SkipReason string

const (
	SkipFetchUnavailable   SkipReason = "fetch_unavailable"
	SkipMissingCoordinates SkipReason = "missing_coordinates"
	SkipPanic              SkipReason = "panic"
)

// Skip describes one dropped POI.
type Skip struct {
	POI    catalog.POI
	Reason SkipReason
	Detail string
}

// Sink receives dropped POIs. Skips never reach API clients.
type Sink interface {
	Skipped(ctx context.Context, skip Skip)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, skip Skip)

// Skipped implements Sink.
func (f SinkFunc) Skipped(ctx context.Context, skip Skip) { f(ctx, skip) }

// LogSink logs each skip and counts it by reason.
type LogSink struct{}

// Skipped implements Sink.
func (LogSink) Skipped(ctx context.Context, skip Skip) {
	metrics.RecordEnrichmentSkip(string(skip.Reason))

	event := logging.Ctx(ctx).Warn()
	if skip.Reason == SkipMissingCoordinates {
		event = logging.Ctx(ctx).Info()
	}
	event.
		Str("poi", skip.POI.ID).
		Str("wikidata_id", skip.POI.WikidataID).
		Str("reason", string(skip.Reason)).
		Str("detail", skip.Detail).
		Msg("Skipping POI")
}

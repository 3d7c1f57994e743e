// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

// Package enrich combines the Wikidata fetcher, parser and summary fetcher into
// the two views the API serves.
//
// Listing mode (EnrichCategory) isolates failures per POI: a POI that cannot be
// fetched, has no coordinates, or panics is dropped and reported to the Sink.
// Detail mode (EnrichDetail) is strict: an unfetchable entity is
// ErrDetailUnavailable.
package enrich

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package wikidata resolves POIs against Wikidata and Wikipedia.

# Components

  - Fetcher: wbgetentities lookups through the entity cache, a rate limiter and a
    circuit breaker. Failures are returned as "absent", never as errors.
  - Document / Entity: tolerant decoding of the response. Claim datavalues are
    decoded eagerly into a closed set of types (StringValue, QuantityValue,
    TimeValue, CoordinateValue, EntityRefValue, UnknownValue).
  - Extractor: total accessors over the first claim of a property.
  - Parser: builds the flat Record (title, description, coordinates, image,
    Wikipedia link, curated facts).
  - SummaryFetcher: the first three sentences of the Wikipedia REST summary.

# Usage

	entities := cache.New[*wikidata.Document](30 * time.Minute)
	fetcher := wikidata.NewFetcher(wikidata.DefaultFetcherConfig(), entities)
	parser := wikidata.NewParser(wikidata.DefaultParserConfig())

	if doc, ok := fetcher.Fetch(ctx, "Q10288"); ok {
	    record := parser.Parse("Q10288", doc)
	    _ = record.Coord
	}

Only the first claim of each property is consulted. Rank and qualifiers are ignored.
*/
package wikidata

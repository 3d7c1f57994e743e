// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package config provides layered configuration for the POIMap server.

Sources are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/poimap/config.yaml
 3. Environment variables listed in envMappings

Only mapped environment variables are read. List settings (CORS_ORIGINS,
WIKIDATA_LANGUAGES, WIKIDATA_WIKIS) accept comma-separated values.

Common Environment Variables:

	HTTP_PORT            listen port (default 8000)
	WIKIDATA_CACHE_TTL   entity cache lifetime (default 30m)
	WIKIDATA_LANGUAGES   label/description preference (default el,en)
	WIKIDATA_RPS         outbound requests per second, 0 disables pacing
	SUMMARY_ENABLED      fetch article summaries for detail views
	JWT_SECRET           token signing secret (default change-me, warned at startup)
	USER_STORE           memory or badger
	CATALOG_PATH         YAML catalog replacing the built-in POI list
	LOG_LEVEL, LOG_FORMAT

Load validates the result and returns an error naming the offending setting.
*/
package config

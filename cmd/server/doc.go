// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

/*
Package main is the entry point for the POIMap server.

POIMap serves a fixed catalog of points of interest to a mobile map client.
Each POI is bound to a Wikidata entity; titles, coordinates, images and facts
are fetched on demand, cached, and returned as JSON.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("poimap")
	├── MonitorSupervisor ("monitor-layer")
	│   └── CacheMonitorService (entity cache size gauge)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: built-in data, or a YAML file from CATALOG_PATH
 4. Pipeline: entity cache, Wikidata fetcher and parser, Wikipedia summaries
 5. Accounts: in-memory or BadgerDB user store, optional demo user
 6. Authentication: HS256 access and refresh tokens
 7. Supervisor Tree: HTTP server and cache monitor

# Configuration

Priority: Environment variables > Config file (CONFIG_PATH or config.yaml) > Defaults

	# Server
	HTTP_PORT=8000
	CORS_ORIGINS=*
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Security
	JWT_SECRET=<secret>          # the built-in default only logs a warning
	USER_STORE=memory            # memory or badger
	USER_STORE_PATH=/data/users
	SEED_DEMO_USER=true          # demo@demo.com / demo1234

	# Upstreams
	WIKIDATA_LANGUAGES=el,en
	WIKIDATA_CACHE_TTL=30m
	SUMMARY_ENABLED=true

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, the user store is closed, and any services that
failed to stop are reported.

# Usage

	export JWT_SECRET=$(openssl rand -base64 32)
	export USER_STORE=badger USER_STORE_PATH=/var/lib/poimap/users
	go run ./cmd/server
*/
package main

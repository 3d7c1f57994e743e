// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (CONFIG_PATH, config.yaml, /etc/poimap/config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	srv := http.Server{Addr: cfg.Server.Addr()}
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Wikidata WikidataConfig `koanf:"wikidata"`
	Summary  SummaryConfig  `koanf:"summary"`
	Security SecurityConfig `koanf:"security"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // read and write timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful drain window
	CORSOrigins     []string      `koanf:"cors_origins"`

	// Per-IP limits. AuthRateLimitReqs applies to /api/auth/* only.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	AuthRateLimitReqs int           `koanf:"auth_rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// WikidataConfig holds entity fetch, cache and parse settings.
type WikidataConfig struct {
	Endpoint  string        `koanf:"endpoint"`
	Languages []string      `koanf:"languages"` // preference order, first wins
	Wikis     []string      `koanf:"wikis"`     // sitelink preference order
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// Outbound pacing. RequestsPerSecond <= 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	CommonsBaseURL string `koanf:"commons_base_url"`
	EntityBaseURL  string `koanf:"entity_base_url"`
	ImageWidth     int    `koanf:"image_width"`
	GalleryWidth   int    `koanf:"gallery_width"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// SummaryConfig holds article summary settings.
type SummaryConfig struct {
	Enabled bool `koanf:"enabled"`

	// RESTBaseURL contains a {lang} placeholder, e.g. https://{lang}.wikipedia.org/api/rest_v1
	RESTBaseURL      string        `koanf:"rest_base_url"`
	PrimaryLanguage  string        `koanf:"primary_language"`
	FallbackLanguage string        `koanf:"fallback_language"`
	Timeout          time.Duration `koanf:"timeout"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for one upstream.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval     time.Duration `koanf:"interval"`     // closed-state counter reset
	Timeout      time.Duration `koanf:"timeout"`      // open-state duration
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds token and user store settings.
type SecurityConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	// UserStore is "memory" (default) or "badger".
	UserStore string `koanf:"user_store"`
	// UserStorePath is the BadgerDB directory (required when user_store=badger).
	UserStorePath string `koanf:"user_store_path"`

	BcryptCost   int  `koanf:"bcrypt_cost"`
	SeedDemoUser bool `koanf:"seed_demo_user"`
}

// CatalogConfig points at an optional catalog YAML file.
type CatalogConfig struct {
	// Path replaces the built-in catalog when set.
	Path string `koanf:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/poimap/config.yaml",
	"/etc/poimap/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultJWTSecret is the development secret. Startup logs a warning when it is in use.
const DefaultJWTSecret = "change-me"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8000,
			Host:              "0.0.0.0",
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			AuthRateLimitReqs: 10,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Wikidata: WikidataConfig{
			Endpoint:          "https://www.wikidata.org/w/api.php",
			Languages:         []string{"el", "en"},
			Wikis:             []string{"elwiki", "enwiki"},
			UserAgent:         "POIMap/1.0 (https://github.com/tomtom215/poimap)",
			Timeout:           15 * time.Second,
			CacheTTL:          30 * time.Minute,
			RequestsPerSecond: 5,
			Burst:             5,
			CommonsBaseURL:    "https://commons.wikimedia.org",
			EntityBaseURL:     "https://www.wikidata.org/wiki/",
			ImageWidth:        1000,
			GalleryWidth:      1100,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Summary: SummaryConfig{
			Enabled:          true,
			RESTBaseURL:      "https://{lang}.wikipedia.org/api/rest_v1",
			PrimaryLanguage:  "el",
			FallbackLanguage: "en",
			Timeout:          8 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Security: SecurityConfig{
			JWTSecret:       DefaultJWTSecret,
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			UserStore:       "memory",
			UserStorePath:   "/data/users",
			BcryptCost:      10,
			SeedDemoUser:    true,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, WIKIDATA_CACHE_TTL -> wikidata.cache_ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
	"wikidata.languages",
	"wikidata.wikis",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":            "server.port",
	"http_host":            "server.host",
	"http_timeout":         "server.timeout",
	"shutdown_timeout":     "server.shutdown_timeout",
	"cors_origins":         "server.cors_origins",
	"rate_limit_requests":  "server.rate_limit_reqs",
	"auth_rate_limit_reqs": "server.auth_rate_limit_reqs",
	"rate_limit_window":    "server.rate_limit_window",
	"disable_rate_limit":   "server.rate_limit_disabled",

	// Wikidata
	"wikidata_endpoint":        "wikidata.endpoint",
	"wikidata_languages":       "wikidata.languages",
	"wikidata_wikis":           "wikidata.wikis",
	"wikidata_user_agent":      "wikidata.user_agent",
	"wikidata_timeout":         "wikidata.timeout",
	"wikidata_cache_ttl":       "wikidata.cache_ttl",
	"wikidata_rps":             "wikidata.requests_per_second",
	"wikidata_burst":           "wikidata.burst",
	"commons_base_url":         "wikidata.commons_base_url",
	"wikidata_entity_base_url": "wikidata.entity_base_url",
	"wikidata_image_width":     "wikidata.image_width",
	"gallery_image_width":      "wikidata.gallery_width",
	"wikidata_breaker_timeout": "wikidata.breaker.timeout",
	"wikidata_breaker_min":     "wikidata.breaker.min_requests",
	"wikidata_breaker_ratio":   "wikidata.breaker.failure_ratio",

	// Summary
	"summary_enabled":           "summary.enabled",
	"summary_rest_base_url":     "summary.rest_base_url",
	"summary_primary_language":  "summary.primary_language",
	"summary_fallback_language": "summary.fallback_language",
	"summary_timeout":           "summary.timeout",

	// Security
	"jwt_secret":        "security.jwt_secret",
	"access_token_ttl":  "security.access_token_ttl",
	"refresh_token_ttl": "security.refresh_token_ttl",
	"user_store":        "security.user_store",
	"user_store_path":   "security.user_store_path",
	"bcrypt_cost":       "security.bcrypt_cost",
	"seed_demo_user":    "security.seed_demo_user",

	// Catalog
	"catalog_path": "catalog.path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Returning "" skips the variable so unrelated environment does not leak into config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/poimap/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateWikidata(); err != nil {
		return err
	}

	if err := c.validateSummary(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return c.validateRateLimits()
}

// Rate limit bounds
const (
	minRateLimitReqs   = 1
	maxRateLimitReqs   = 100000
	minRateLimitWindow = time.Second
	maxRateLimitWindow = time.Hour
)

// validateRateLimits checks limiter bounds unless rate limiting is disabled
func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < minRateLimitReqs || c.Server.RateLimitReqs > maxRateLimitReqs {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitReqs, maxRateLimitReqs)
	}
	if c.Server.AuthRateLimitReqs < minRateLimitReqs || c.Server.AuthRateLimitReqs > maxRateLimitReqs {
		return fmt.Errorf("AUTH_RATE_LIMIT_REQS must be between %d and %d", minRateLimitReqs, maxRateLimitReqs)
	}
	if c.Server.RateLimitWindow < minRateLimitWindow || c.Server.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %s and %s", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateWikidata validates entity fetch and parse configuration
func (c *Config) validateWikidata() error {
	w := c.Wikidata

	if err := validateEndpointURL(w.Endpoint, "WIKIDATA_ENDPOINT"); err != nil {
		return err
	}
	if err := validateHTTPURL(w.CommonsBaseURL, "COMMONS_BASE_URL"); err != nil {
		return err
	}
	if err := validateEndpointURL(w.EntityBaseURL, "WIKIDATA_ENTITY_BASE_URL"); err != nil {
		return err
	}
	if err := validateLanguages(w.Languages, "WIKIDATA_LANGUAGES"); err != nil {
		return err
	}
	if len(w.Wikis) == 0 {
		return fmt.Errorf("WIKIDATA_WIKIS must list at least one wiki")
	}
	for _, wiki := range w.Wikis {
		if !strings.HasSuffix(wiki, "wiki") || wiki == "wiki" {
			return fmt.Errorf("WIKIDATA_WIKIS entry %q must look like <lang>wiki", wiki)
		}
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("WIKIDATA_TIMEOUT must be positive")
	}
	if w.CacheTTL <= 0 {
		return fmt.Errorf("WIKIDATA_CACHE_TTL must be positive")
	}
	if w.RequestsPerSecond > 0 && w.Burst < 1 {
		return fmt.Errorf("WIKIDATA_BURST must be at least 1 when WIKIDATA_RPS is set")
	}
	if w.ImageWidth < 1 || w.GalleryWidth < 1 {
		return fmt.Errorf("image widths must be positive")
	}
	return validateBreaker(w.Breaker, "wikidata.breaker")
}

// validateSummary validates article summary configuration (only if enabled)
func (c *Config) validateSummary() error {
	s := c.Summary
	if !s.Enabled {
		return nil
	}

	if !strings.Contains(s.RESTBaseURL, "{lang}") {
		return fmt.Errorf("SUMMARY_REST_BASE_URL must contain a {lang} placeholder")
	}
	probe := strings.ReplaceAll(s.RESTBaseURL, "{lang}", "en")
	if err := validateEndpointURL(probe, "SUMMARY_REST_BASE_URL"); err != nil {
		return err
	}
	if s.PrimaryLanguage == "" || s.FallbackLanguage == "" {
		return fmt.Errorf("SUMMARY_PRIMARY_LANGUAGE and SUMMARY_FALLBACK_LANGUAGE are required")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("SUMMARY_TIMEOUT must be positive")
	}
	return validateBreaker(s.Breaker, "summary.breaker")
}

func validateBreaker(b BreakerConfig, field string) error {
	if b.MaxRequests < 1 {
		return fmt.Errorf("%s.max_requests must be at least 1", field)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("%s.timeout must be positive", field)
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("%s.failure_ratio must be in (0, 1]", field)
	}
	return nil
}

func validateLanguages(langs []string, field string) error {
	if len(langs) == 0 {
		return fmt.Errorf("%s must list at least one language", field)
	}
	for _, lang := range langs {
		if lang == "" || strings.ContainsAny(lang, "| ") {
			return fmt.Errorf("%s entry %q is not a language code", field, lang)
		}
	}
	return nil
}

// Valid user store backends
var validUserStores = map[string]bool{
	"memory": true,
	"badger": true,
}

// validateSecurity validates token and user store configuration
func (c *Config) validateSecurity() error {
	s := c.Security

	if s.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if s.AccessTokenTTL <= 0 || s.RefreshTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	if s.RefreshTokenTTL < s.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL must not be shorter than ACCESS_TOKEN_TTL")
	}
	if !validUserStores[s.UserStore] {
		return fmt.Errorf("USER_STORE must be one of: memory, badger")
	}
	if s.UserStore == "badger" && s.UserStorePath == "" {
		return fmt.Errorf("USER_STORE_PATH is required when USER_STORE=badger")
	}
	// bcrypt.MinCost and bcrypt.MaxCost
	if s.BcryptCost < 4 || s.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

// IsDefaultJWTSecret reports whether the development secret is in use
func (c *Config) IsDefaultJWTSecret() bool {
	return c.Security.JWTSecret == DefaultJWTSecret
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

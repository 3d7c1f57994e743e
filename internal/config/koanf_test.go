// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Wikidata.CacheTTL != 30*time.Minute {
		t.Errorf("Wikidata.CacheTTL = %v, want 30m", cfg.Wikidata.CacheTTL)
	}
	if !reflect.DeepEqual(cfg.Wikidata.Languages, []string{"el", "en"}) {
		t.Errorf("Wikidata.Languages = %v, want [el en]", cfg.Wikidata.Languages)
	}
	if cfg.Security.AccessTokenTTL != 15*time.Minute {
		t.Errorf("Security.AccessTokenTTL = %v, want 15m", cfg.Security.AccessTokenTTL)
	}
	if cfg.Security.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("Security.RefreshTokenTTL = %v, want 168h", cfg.Security.RefreshTokenTTL)
	}
	if cfg.Security.UserStore != "memory" {
		t.Errorf("Security.UserStore = %q, want memory", cfg.Security.UserStore)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "server.cors_origins"},
		{"WIKIDATA_CACHE_TTL", "wikidata.cache_ttl"},
		{"WIKIDATA_LANGUAGES", "wikidata.languages"},
		{"WIKIDATA_RPS", "wikidata.requests_per_second"},
		{"SUMMARY_ENABLED", "summary.enabled"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"USER_STORE", "security.user_store"},
		{"CATALOG_PATH", "catalog.path"},
		{"log_level", "logging.level"},

		// Unmapped variables are dropped
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestFindConfigFile(t *testing.T) {
	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 9000\n")
		t.Setenv(ConfigPathEnvVar, path)
		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got == "/non/existent/config.yaml" {
			t.Error("findConfigFile() should not return a missing file")
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WIKIDATA_CACHE_TTL", "45m")
	t.Setenv("WIKIDATA_LANGUAGES", "en, de ,fr")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Wikidata.CacheTTL != 45*time.Minute {
		t.Errorf("Wikidata.CacheTTL = %v, want 45m", cfg.Wikidata.CacheTTL)
	}
	if !reflect.DeepEqual(cfg.Wikidata.Languages, []string{"en", "de", "fr"}) {
		t.Errorf("Wikidata.Languages = %v, want [en de fr]", cfg.Wikidata.Languages)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("Server.CORSOrigins = %v, want 2 entries", cfg.Server.CORSOrigins)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9100
wikidata:
  languages: [de, en]
  cache_ttl: 1h
security:
  jwt_secret: file-secret
catalog:
  path: /srv/catalog.yaml
logging:
  level: warn
  format: console
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Wikidata.Languages, []string{"de", "en"}) {
		t.Errorf("Wikidata.Languages = %v", cfg.Wikidata.Languages)
	}
	if cfg.Wikidata.CacheTTL != time.Hour {
		t.Errorf("Wikidata.CacheTTL = %v, want 1h", cfg.Wikidata.CacheTTL)
	}
	if cfg.Security.JWTSecret != "file-secret" {
		t.Errorf("Security.JWTSecret = %q", cfg.Security.JWTSecret)
	}
	if cfg.Catalog.Path != "/srv/catalog.yaml" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	// Untouched sections keep their defaults
	if cfg.Security.AccessTokenTTL != 15*time.Minute {
		t.Errorf("Security.AccessTokenTTL = %v, want default 15m", cfg.Security.AccessTokenTTL)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9100\nlogging:\n  level: warn\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"unknown user store", map[string]string{"USER_STORE": "redis"}},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "2"}},
		{"bad endpoint scheme", map[string]string{"WIKIDATA_ENDPOINT": "ftp://example.org/api"}},
		{"zero cache ttl", map[string]string{"WIKIDATA_CACHE_TTL": "0s"}},
		{"summary without placeholder", map[string]string{"SUMMARY_REST_BASE_URL": "https://en.wikipedia.org/api/rest_v1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadWithKoanf(); err == nil {
				t.Error("LoadWithKoanf() expected validation error, got nil")
			}
		})
	}
}

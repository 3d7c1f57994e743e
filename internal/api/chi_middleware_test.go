// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/poimap/internal/config"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// =====================================================
// ChiMiddleware Configuration Tests
// =====================================================

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m.config == nil {
		t.Fatal("config is nil")
	}
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.AuthRateLimitRequests >= m.config.RateLimitRequests {
		t.Errorf("auth limit %d should be stricter than %d", m.config.AuthRateLimitRequests, m.config.RateLimitRequests)
	}
}

func TestNewChiMiddlewareFromServer(t *testing.T) {
	m := NewChiMiddlewareFromServer(&config.ServerConfig{
		CORSOrigins:       []string{"https://app.example.com"},
		RateLimitReqs:     50,
		AuthRateLimitReqs: 5,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	})

	if len(m.config.CORSAllowedOrigins) != 1 || m.config.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigins = %v", m.config.CORSAllowedOrigins)
	}
	if m.config.RateLimitRequests != 50 || m.config.AuthRateLimitRequests != 5 {
		t.Errorf("limits = %d/%d", m.config.RateLimitRequests, m.config.AuthRateLimitRequests)
	}
	if m.config.RateLimitWindow != 30*time.Second || !m.config.RateLimitDisabled {
		t.Errorf("window/disabled = %v/%v", m.config.RateLimitWindow, m.config.RateLimitDisabled)
	}
}

// =====================================================
// Rate Limiting Tests
// =====================================================

func TestRateLimitAuth_Returns429(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.AuthRateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	handler := NewChiMiddleware(cfg).RateLimitAuth()(okHandler)

	hits := metrics.APIRateLimitHits.WithLabelValues("auth")
	before := testutil.ToFloat64(hits)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", http.NoBody)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			if resp := decodeError(t, w); resp.Error.Code != ErrCodeTooManyRequests || resp.Detail != MsgRateLimited {
				t.Errorf("429 body = %s", w.Body.String())
			}
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
	if got := testutil.ToFloat64(hits) - before; got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	handler := NewChiMiddleware(cfg).RateLimit()(okHandler)

	for _, addr := range []string{"198.51.100.1:1000", "198.51.100.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/about", http.NoBody)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("first request from %s = %d, want 200", addr, w.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.AuthRateLimitRequests = 1
	cfg.RateLimitDisabled = true
	m := NewChiMiddleware(cfg)

	for name, mw := range map[string]func(http.Handler) http.Handler{
		"api":  m.RateLimit(),
		"auth": m.RateLimitAuth(),
	} {
		handler := mw(okHandler)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
			if w.Code != http.StatusOK {
				t.Fatalf("%s request %d = %d, want 200", name, i, w.Code)
			}
		}
	}
}

// =====================================================
// CORS Middleware Tests
// =====================================================

func TestCORS_Preflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	handler := NewChiMiddleware(cfg).CORS()(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/pois/categories", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/pois/categories", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

// =====================================================
// Request ID and Security Header Tests
// =====================================================

func TestRequestIDWithLogging(t *testing.T) {
	var ctxID, correlationID string
	handler := RequestIDWithLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		if ctxID == "" || correlationID == "" {
			t.Fatalf("ids not set: request=%q correlation=%q", ctxID, correlationID)
		}
		if got := w.Header().Get("X-Request-Id"); got != ctxID {
			t.Errorf("response header = %q, want %q", got, ctxID)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("X-Request-Id", "client-supplied-id")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if ctxID != "client-supplied-id" {
			t.Errorf("request id = %q, want client-supplied-id", ctxID)
		}
	})
}

func TestAPISecurityHeaders(t *testing.T) {
	handler := APISecurityHeaders()(okHandler)

	tests := []struct {
		name      string
		forwarded string
		wantHSTS  bool
	}{
		{"plain http", "", false},
		{"behind tls proxy", "https", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/about", http.NoBody)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing X-Content-Type-Options")
			}
			if w.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("missing X-Frame-Options")
			}
			if got := w.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tomtom215/poimap/internal/config"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:       "test-secret-for-unit-tests",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{"valid", testSecurityConfig(), false},
		{"empty secret", &config.SecurityConfig{AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}, true},
		{"zero ttl", &config.SecurityConfig{JWTSecret: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil || m == nil {
				t.Errorf("NewJWTManager() = (%v, %v)", m, err)
			}
		})
	}
}

func TestIssueAndValidatePair(t *testing.T) {
	m := newTestJWTManager(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	pair, err := m.IssuePair("demo@demo.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	access, err := m.ValidateToken(pair.AccessToken, TokenAccess)
	if err != nil {
		t.Fatalf("ValidateToken(access) error = %v", err)
	}
	if access.Subject != "demo@demo.com" || access.Type != TokenAccess {
		t.Errorf("access claims = %+v", access)
	}
	if got := access.ExpiresAt.Sub(access.IssuedAt.Time); got != 15*time.Minute {
		t.Errorf("access lifetime = %v, want 15m", got)
	}

	refresh, err := m.ValidateToken(pair.RefreshToken, TokenRefresh)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) error = %v", err)
	}
	if got := refresh.ExpiresAt.Sub(refresh.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("refresh lifetime = %v, want 168h", got)
	}
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	m := newTestJWTManager(t)
	pair, err := m.IssuePair("a@b.c")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := m.ValidateToken(pair.RefreshToken, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
	if _, err := m.ValidateToken(pair.AccessToken, TokenRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	m := newTestJWTManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, err := m.GenerateToken("a@b.c", TokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	now = now.Add(14 * time.Minute)
	if _, err := m.ValidateToken(token, TokenAccess); err != nil {
		t.Errorf("token should be valid before expiry: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.ValidateToken(token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestValidateTokenRejectsForeignTokens(t *testing.T) {
	m := newTestJWTManager(t)

	otherCfg := testSecurityConfig()
	otherCfg.JWTSecret = "a-different-secret"
	other, err := NewJWTManager(otherCfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreign, err := other.GenerateToken("a@b.c", TokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Type: TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@b.c",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"alg none":     unsigned,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := m.ValidateToken(token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	m := newTestJWTManager(t)
	pair, err := m.IssuePair("a@b.c")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	next, err := m.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	claims, err := m.ValidateToken(next.AccessToken, TokenAccess)
	if err != nil || claims.Subject != "a@b.c" {
		t.Errorf("refreshed access token = (%+v, %v)", claims, err)
	}

	if _, err := m.Refresh(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh(access token) error = %v, want ErrInvalidToken", err)
	}
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tomtom215/poimap/internal/config"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Claims represents JWT claims. Subject carries the normalized email.
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is returned by login, signup and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTManager creates a JWT manager for HS256 access and refresh tokens.
//
// Returns an error if JWT_SECRET is empty or either lifetime is not positive.
// The secret is kept as []byte.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return &JWTManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}, nil
}

// GenerateToken creates a signed token of the given type for subject.
func (m *JWTManager) GenerateToken(subject string, typ TokenType) (string, error) {
	ttl := m.accessTTL
	if typ == TokenRefresh {
		ttl = m.refreshTTL
	}

	now := m.now()
	claims := &Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// IssuePair creates a fresh access and refresh token for subject.
func (m *JWTManager) IssuePair(subject string) (*TokenPair, error) {
	access, err := m.GenerateToken(subject, TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := m.GenerateToken(subject, TokenRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateToken parses tokenString and checks signature, algorithm, expiry and type.
//
// Every failure wraps ErrInvalidToken. Tokens signed with anything other than
// HS256 are rejected, which rules out "none" and algorithm confusion.
func (m *JWTManager) ValidateToken(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: got %q token, want %q", ErrInvalidToken, claims.Type, want)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token stays valid until it expires; tokens are stateless.
func (m *JWTManager) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := m.ValidateToken(refreshToken, TokenRefresh)
	if err != nil {
		return nil, err
	}
	return m.IssuePair(claims.Subject)
}

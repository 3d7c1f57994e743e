// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/poimap/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the *Claims of an authenticated request.
const ClaimsContextKey contextKey = "claims"

// Messages returned to clients by RequireAccess.
const (
	MsgMissingBearer      = "Missing Bearer token"
	MsgInvalidAccessToken = "Invalid access token"
)

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// Middleware enforces bearer access tokens.
type Middleware struct {
	jwtManager *JWTManager
	writeError ErrorWriter
}

// NewMiddleware creates bearer middleware. A nil writeError falls back to http.Error.
func NewMiddleware(jwtManager *JWTManager, writeError ErrorWriter) *Middleware {
	if writeError == nil {
		writeError = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{jwtManager: jwtManager, writeError: writeError}
}

// RequireAccess rejects requests without a valid access token. Refresh tokens
// are not accepted here.
func (m *Middleware) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", MsgMissingBearer)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token, TokenAccess)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Access token rejected")
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", MsgInvalidAccessToken)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken returns the token of an "Authorization: Bearer <token>" header.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// ClaimsFromContext returns the claims stored by RequireAccess.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

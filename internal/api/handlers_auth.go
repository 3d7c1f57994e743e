// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/poimap/internal/auth"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

// Auth error messages. Clients match on these strings.
const (
	MsgInvalidCredentials   = "Invalid credentials"
	MsgPasswordTooShort     = "Password must be at least 6 characters"
	MsgPasswordTooLong      = "Password must be at most 72 bytes"
	MsgUserExists           = "User already exists"
	MsgInvalidRefreshToken  = "Invalid refresh token"
	msgTokenIssueFailed     = "Failed to issue tokens"
	msgAccountCreateFailure = "Failed to create account"
)

// Login exchanges email and password for a token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rw := NewResponseWriter(w, r)
	subject, err := h.accounts.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		rw.Unauthorized(MsgInvalidCredentials)
		return
	}

	h.writeTokenPair(rw, r, subject)
}

// Signup registers a new account and returns a token pair.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rw := NewResponseWriter(w, r)
	subject, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		rw.BadRequest(MsgPasswordTooShort)
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		rw.BadRequest(MsgPasswordTooLong)
		return
	case errors.Is(err, auth.ErrUserExists):
		rw.Conflict(MsgUserExists)
		return
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Signup failed")
		rw.InternalError(msgAccountCreateFailure)
		return
	}

	h.writeTokenPair(rw, r, subject)
}

// Refresh exchanges a refresh token for a new pair.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rw := NewResponseWriter(w, r)
	pair, err := h.jwtManager.Refresh(req.RefreshToken)
	metrics.RecordAuthAttempt("refresh", err == nil)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Refresh rejected")
		rw.Unauthorized(MsgInvalidRefreshToken)
		return
	}
	rw.OK(pair)
}

func (h *Handler) writeTokenPair(rw *ResponseWriter, r *http.Request, subject string) {
	pair, err := h.jwtManager.IssuePair(subject)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token signing failed")
		rw.InternalError(msgTokenIssueFailed)
		return
	}
	rw.OK(pair)
}

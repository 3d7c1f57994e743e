// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/validation"
)

// maxRequestBody bounds auth request bodies.
const maxRequestBody = 1 << 16

// LoginRequest is the body of POST /api/auth/login.
// Login accepts any non-empty identifier so accounts created before email
// validation still work.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// SignupRequest is the body of POST /api/auth/signup. The six-character
// minimum and the 72-byte bcrypt cap are checked by auth.Accounts.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// FieldError is one entry of a VALIDATION_FAILED details list.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

var errEmptyBody = errors.New("request body is empty")

// decodeAndValidate reads a JSON body into dst and validates it. On failure it
// has already written the response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	if err := decodeJSON(r, dst); err != nil {
		rw.BadRequest("Invalid JSON body")
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		details := make([]FieldError, 0, len(verr.Errors()))
		for _, fe := range verr.Errors() {
			details = append(details, FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: fe.Error()})
		}
		rw.ValidationError(verr.Error(), details)
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

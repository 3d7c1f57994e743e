// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package validation

import (
	"strings"
	"testing"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type poiRef struct {
	WikidataID string `json:"wikidataId" validate:"required,wikidataid"`
}

func hasFailure(err *RequestValidationError, field, tag string) bool {
	for _, fe := range err.Errors() {
		if fe.Field() == field && fe.Tag() == tag {
			return true
		}
	}
	return false
}

func TestValidatorSingleton(t *testing.T) {
	if getValidator() != getValidator() {
		t.Error("getValidator should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	if err := ValidateStruct(&credentials{Email: "demo@demo.com", Password: "demo1234"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     credentials
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing email", credentials{Password: "secret1"}, "email", "required", "email is required"},
		{"bad email", credentials{Email: "nope", Password: "secret1"}, "email", "email", "email must be a valid email address"},
		{"short password", credentials{Email: "a@b.co", Password: "123"}, "password", "min", "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !hasFailure(err, tt.wantField, tt.wantTag) {
				t.Errorf("expected %s/%s failure, got %v", tt.wantField, tt.wantTag, err.Errors())
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestWikidataIDValidation(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"Q42", true},
		{"Q10288", true},
		{"q42", false},
		{"Q0", false},
		{"QXXXXXX", false},
		{"P31", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateStruct(&poiRef{WikidataID: tt.id})
			if (err == nil) != tt.valid {
				t.Errorf("ValidateStruct(%q) valid = %v, want %v", tt.id, err == nil, tt.valid)
			}
		})
	}
}

func TestMultipleErrorsJoined(t *testing.T) {
	err := ValidateStruct(&credentials{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/auth"
	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/enrich"
	"github.com/tomtom215/poimap/internal/wikidata"
)

func authedGet(t *testing.T, srv http.Handler, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	pair, err := h.JWTManager().IssuePair(auth.DemoEmail)
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestPOIRoutesRequireBearer(t *testing.T) {
	h := setupTestHandler(t, nil)
	srv := testServer(t, h)
	refresh, err := h.JWTManager().GenerateToken(auth.DemoEmail, auth.TokenRefresh)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantDetail string
	}{
		{"no header", "", auth.MsgMissingBearer},
		{"refresh token", "Bearer " + refresh, auth.MsgInvalidAccessToken},
	}

	for _, path := range []string{"/pois/categories", "/pois/categories/monuments", "/pois/poi-1"} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				w := httptest.NewRecorder()
				srv.ServeHTTP(w, req)

				if w.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", w.Code)
				}
				resp := decodeError(t, w)
				if resp.Detail != tt.wantDetail || resp.Error.Code != ErrCodeUnauthorized {
					t.Errorf("error = (%q, %q)", resp.Error.Code, resp.Detail)
				}
			})
		}
	}
}

func TestAbout(t *testing.T) {
	h := setupTestHandler(t, nil)
	w := httptest.NewRecorder()
	testServer(t, h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var team []AboutMember
	if err := json.Unmarshal(w.Body.Bytes(), &team); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(team) != 2 || team[0] != (AboutMember{Name: "Maria", AM: "1001"}) {
		t.Errorf("team = %+v", team)
	}
}

func TestCategories(t *testing.T) {
	h := setupTestHandler(t, nil)
	w := authedGet(t, testServer(t, h), h, "/pois/categories")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []CategoryOut
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []CategoryOut{
		{ID: "monuments", Name: "Monuments", Count: 2},
		{ID: "empty", Name: "Empty", Count: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("categories = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoryPOIs(t *testing.T) {
	enricher := &fakeEnricher{listed: map[string]enrich.Listed{
		"poi-1": {
			POI: catalog.POI{ID: "poi-1", CategoryID: "monuments", WikidataID: "Q10288"},
			Record: wikidata.Record{
				Title: "Parthenon",
				Coord: &wikidata.Coordinate{Lat: 37.9715, Lon: 23.7267},
			},
		},
	}}
	h := setupTestHandler(t, enricher)
	srv := testServer(t, h)

	t.Run("listing", func(t *testing.T) {
		w := authedGet(t, srv, h, "/pois/categories/monuments")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}

		var items []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("items = %d, want 1", len(items))
		}
		item := items[0]
		if item["id"] != "poi-1" || item["categoryId"] != "monuments" || item["wikidataId"] != "Q10288" {
			t.Errorf("identity fields = %v", item)
		}
		if item["title"] != "Parthenon" || item["lat"] != 37.9715 || item["lon"] != 23.7267 {
			t.Errorf("record fields = %v", item)
		}
		for _, key := range []string{"description", "image", "wikipediaUrl"} {
			v, present := item[key]
			if !present || v != nil {
				t.Errorf("%s = %v (present %v), want null", key, v, present)
			}
		}
	})

	t.Run("empty category is an empty list", func(t *testing.T) {
		w := authedGet(t, srv, h, "/pois/categories/empty")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("body = %q, want []", body)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		w := authedGet(t, srv, h, "/pois/categories/nope")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if resp := decodeError(t, w); resp.Detail != MsgCategoryNotFound {
			t.Errorf("detail = %q", resp.Detail)
		}
	})
}

func TestPOIDetail(t *testing.T) {
	enricher := &fakeEnricher{detail: &enrich.Detail{
		Record: wikidata.Record{
			Title:        "Parthenon",
			Description:  "temple on the Athenian Acropolis",
			Coord:        &wikidata.Coordinate{Lat: 37.9715, Lon: 23.7267},
			ImageURL:     "https://img/primary.jpg",
			WikipediaURL: "https://el.wikipedia.org/wiki/Parthenon",
			Facts:        []wikidata.Fact{{Label: "Elevation", Value: "156 m"}},
			RawEntity:    json.RawMessage(`{"id":"Q10288"}`),
		},
		Images:           []string{"https://img/primary.jpg", "commons:A.jpg", "commons:B.jpg"},
		ExtraText:        "Elevation: 156 m",
		ShortDescription: "The Parthenon is a former temple.",
	}}
	h := setupTestHandler(t, enricher)
	w := authedGet(t, testServer(t, h), h, "/pois/poi-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var got PoiDetails
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "poi-1" || got.CategoryName == nil || *got.CategoryName != "Monuments" {
		t.Errorf("id/categoryName = %q/%v", got.ID, got.CategoryName)
	}
	if len(got.Images) != 3 || got.ExtraText != "Elevation: 156 m" {
		t.Errorf("images/extraText = %v/%q", got.Images, got.ExtraText)
	}
	if len(got.Facts) != 1 || got.Facts[0].Label != "Elevation" {
		t.Errorf("facts = %+v", got.Facts)
	}
	if string(got.Raw) != `{"id":"Q10288"}` {
		t.Errorf("raw = %s", got.Raw)
	}
	if got.ShortDescription == nil || *got.ShortDescription != "The Parthenon is a former temple." {
		t.Errorf("shortDescription = %v", got.ShortDescription)
	}
	if len(enricher.gotExtras) != 2 {
		t.Errorf("extras passed to enricher = %v", enricher.gotExtras)
	}
}

func TestPOIDetailEmptyCollections(t *testing.T) {
	h := setupTestHandler(t, &fakeEnricher{detail: &enrich.Detail{}})
	w := authedGet(t, testServer(t, h), h, "/pois/poi-2")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key, want := range map[string]string{"images": "[]", "facts": "[]", "lat": "null", "shortDescription": "null"} {
		if got := string(body[key]); got != want {
			t.Errorf("%s = %s, want %s", key, got, want)
		}
	}
}

func TestPOIDetailErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"unknown poi", "/pois/poi-404", nil, http.StatusNotFound, ErrCodeNotFound, MsgPOINotFound},
		{"wikidata unavailable", "/pois/poi-1", fmt.Errorf("poi-1: %w", enrich.ErrDetailUnavailable), http.StatusBadGateway, ErrCodeExternalServiceFail, MsgWikidataUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestHandler(t, &fakeEnricher{detailErr: tt.err})
			w := authedGet(t, testServer(t, h), h, tt.path)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeError(t, w)
			if resp.Error.Code != tt.wantCode || resp.Detail != tt.wantDetail {
				t.Errorf("error = (%q, %q), want (%q, %q)", resp.Error.Code, resp.Detail, tt.wantCode, tt.wantDetail)
			}
		})
	}
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/catalog"
	"github.com/tomtom215/poimap/internal/enrich"
	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/wikidata"
)

// POI error messages.
const (
	MsgCategoryNotFound    = "Category not found"
	MsgPOINotFound         = "POI not found"
	MsgWikidataUnavailable = "Wikidata unavailable"
	msgDetailFailed        = "Failed to load POI"
)

// AboutMember is one entry of GET /about.
type AboutMember struct {
	Name string `json:"name"`
	AM   string `json:"am"`
}

// CategoryOut is one entry of GET /pois/categories.
type CategoryOut struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PoiListItem is one entry of GET /pois/categories/{id}. Absent values encode as null.
type PoiListItem struct {
	ID           string   `json:"id"`
	CategoryID   string   `json:"categoryId"`
	WikidataID   string   `json:"wikidataId"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Image        *string  `json:"image"`
	WikipediaURL *string  `json:"wikipediaUrl"`
}

// PoiDetails is the body of GET /pois/{id}.
type PoiDetails struct {
	PoiListItem
	CategoryName     *string         `json:"categoryName"`
	Images           []string        `json:"images"`
	Facts            []wikidata.Fact `json:"facts"`
	ExtraText        string          `json:"extraText"`
	Raw              json.RawMessage `json:"raw"`
	ShortDescription *string         `json:"shortDescription"`
}

// About lists the team.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	team := h.catalog.Team()
	out := make([]AboutMember, 0, len(team))
	for _, m := range team {
		out = append(out, AboutMember{Name: m.Name, AM: m.AM})
	}
	WriteJSON(w, r, out)
}

// Categories lists every category with its POI count, zero counts included.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	counts := h.catalog.CategoryCounts()
	out := make([]CategoryOut, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryOut{ID: c.ID, Name: c.Name, Count: c.Count})
	}
	WriteJSON(w, r, out)
}

// CategoryPOIs enriches every POI of a category. POIs without coordinates or
// whose entity could not be fetched are left out of the list.
func (h *Handler) CategoryPOIs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.catalog.Category(id); !ok {
		NewResponseWriter(w, r).NotFound(MsgCategoryNotFound)
		return
	}

	listed := h.enricher.EnrichCategory(r.Context(), h.catalog.POIsInCategory(id))
	out := make([]PoiListItem, 0, len(listed))
	for _, l := range listed {
		out = append(out, listItem(l.POI, l.Record))
	}
	WriteJSON(w, r, out)
}

// POIDetail returns the full view of one POI.
func (h *Handler) POIDetail(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	poi, ok := h.catalog.POI(chi.URLParam(r, "id"))
	if !ok {
		rw.NotFound(MsgPOINotFound)
		return
	}

	detail, err := h.enricher.EnrichDetail(r.Context(), poi, h.catalog.ExtraImages(poi.ID))
	if err != nil {
		if errors.Is(err, enrich.ErrDetailUnavailable) {
			rw.ExternalServiceError(MsgWikidataUnavailable, err)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("poi", poi.ID).Msg("Detail enrichment failed")
		rw.InternalError(msgDetailFailed)
		return
	}

	rw.OK(h.details(detail))
}

func (h *Handler) details(d *enrich.Detail) PoiDetails {
	out := PoiDetails{
		PoiListItem:      listItem(d.POI, d.Record),
		Images:           d.Images,
		Facts:            d.Record.Facts,
		ExtraText:        d.ExtraText,
		Raw:              d.Record.RawEntity,
		ShortDescription: optional(d.ShortDescription),
	}
	if cat, ok := h.catalog.Category(d.POI.CategoryID); ok {
		out.CategoryName = optional(cat.Name)
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Facts == nil {
		out.Facts = []wikidata.Fact{}
	}
	return out
}

func listItem(poi catalog.POI, rec wikidata.Record) PoiListItem {
	item := PoiListItem{
		ID:           poi.ID,
		CategoryID:   poi.CategoryID,
		WikidataID:   poi.WikidataID,
		Title:        optional(rec.Title),
		Description:  optional(rec.Description),
		Image:        optional(rec.ImageURL),
		WikipediaURL: optional(rec.WikipediaURL),
	}
	if rec.Coord != nil {
		lat, lon := rec.Coord.Lat, rec.Coord.Lon
		item.Lat, item.Lon = &lat, &lon
	}
	return item
}

// optional maps the empty string to null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"github.com/goccy/go-json"
)

// Document is a wbgetentities response. Entities stay raw until Entity is called
// so one malformed item cannot fail the whole document.
type Document struct {
	Entities map[string]json.RawMessage `json:"entities"`
}

// DecodeDocument parses a response body. Only the outer envelope has to be valid JSON.
func DecodeDocument(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	if doc.Entities == nil {
		doc.Entities = map[string]json.RawMessage{}
	}
	return &doc, nil
}

// Entity is the decoded subset of one Wikidata item.
type Entity struct {
	ID           string
	Labels       map[string]string // language -> value
	Descriptions map[string]string // language -> value
	Sitelinks    map[string]string // wiki key -> page title
	Claims       map[string][]Claim
	Raw          json.RawMessage
}

// Entity resolves id within the document. ok is false when the id is not present.
func (d *Document) Entity(id string) (*Entity, bool) {
	if d == nil {
		return nil, false
	}
	raw, ok := d.Entities[id]
	if !ok {
		return nil, false
	}
	return DecodeEntity(id, raw), true
}

// DecodeEntity decodes each section independently. A section that fails to decode
// is left empty; DecodeEntity itself never fails.
func DecodeEntity(id string, raw json.RawMessage) *Entity {
	entity := &Entity{
		ID:           id,
		Labels:       map[string]string{},
		Descriptions: map[string]string{},
		Sitelinks:    map[string]string{},
		Claims:       map[string][]Claim{},
		Raw:          raw,
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return entity
	}

	decodeTextMap(sections["labels"], entity.Labels, "value")
	decodeTextMap(sections["descriptions"], entity.Descriptions, "value")
	decodeTextMap(sections["sitelinks"], entity.Sitelinks, "title")

	var claims map[string][]json.RawMessage
	if raw, ok := sections["claims"]; ok && json.Unmarshal(raw, &claims) == nil {
		for prop, statements := range claims {
			decoded := make([]Claim, 0, len(statements))
			for _, st := range statements {
				decoded = append(decoded, decodeClaim(st))
			}
			entity.Claims[prop] = decoded
		}
	}

	return entity
}

// decodeTextMap reads {key: {field: "text", ...}} entries, skipping malformed or empty ones.
func decodeTextMap(raw json.RawMessage, dst map[string]string, field string) {
	if len(raw) == 0 {
		return
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}
	for key, entryRaw := range entries {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(entryRaw, &entry); err != nil {
			continue
		}
		var text string
		if err := json.Unmarshal(entry[field], &text); err != nil || text == "" {
			continue
		}
		dst[key] = text
	}
}

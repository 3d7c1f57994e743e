// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ClaimValue is the closed set of decoded datavalue shapes:
// StringValue, QuantityValue, TimeValue, CoordinateValue, EntityRefValue or UnknownValue.
type ClaimValue interface {
	isClaimValue()
}

// StringValue covers string, url and external-id properties.
type StringValue string

// QuantityValue keeps the amount as sent ("+1572", "-3.5").
type QuantityValue struct {
	Amount string
	Unit   string
}

// TimeValue keeps the ISO-8601-like string as sent ("+1880-00-00T00:00:00Z").
type TimeValue struct {
	Time      string
	Precision int
}

// CoordinateValue holds a globe coordinate. Either side may be missing in malformed data.
type CoordinateValue struct {
	Latitude  *float64
	Longitude *float64
}

// EntityRefValue references another item or property by id ("Q41").
type EntityRefValue struct {
	ID string
}

// UnknownValue is any datavalue that is absent, of an unsupported type, or malformed.
type UnknownValue struct {
	Type string
	Raw  json.RawMessage
}

func (StringValue) isClaimValue()     {}
func (QuantityValue) isClaimValue()   {}
func (TimeValue) isClaimValue()       {}
func (CoordinateValue) isClaimValue() {}
func (EntityRefValue) isClaimValue()  {}
func (UnknownValue) isClaimValue()    {}

// Claim is one statement. Only the main snak value is kept; rank and qualifiers are dropped.
type Claim struct {
	Value ClaimValue
}

type statementWire struct {
	Mainsnak struct {
		Datavalue *struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

func decodeClaim(raw json.RawMessage) Claim {
	var st statementWire
	if err := json.Unmarshal(raw, &st); err != nil || st.Mainsnak.Datavalue == nil {
		// novalue / somevalue snaks carry no datavalue.
		return Claim{Value: UnknownValue{Raw: raw}}
	}
	dv := st.Mainsnak.Datavalue
	return Claim{Value: decodeValue(dv.Type, dv.Value)}
}

func decodeValue(typ string, raw json.RawMessage) ClaimValue {
	if typ == "" {
		typ = inferType(raw)
	}

	unknown := UnknownValue{Type: typ, Raw: raw}

	switch typ {
	case "string":
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return unknown
		}
		return StringValue(s)

	case "quantity":
		var q struct {
			Amount json.RawMessage `json:"amount"`
			Unit   string          `json:"unit"`
		}
		if json.Unmarshal(raw, &q) != nil {
			return unknown
		}
		amount, ok := scalarText(q.Amount)
		if !ok {
			return unknown
		}
		return QuantityValue{Amount: amount, Unit: q.Unit}

	case "time":
		var t struct {
			Time      string `json:"time"`
			Precision int    `json:"precision"`
		}
		if json.Unmarshal(raw, &t) != nil {
			return unknown
		}
		return TimeValue{Time: t.Time, Precision: t.Precision}

	case "globecoordinate":
		var c struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		}
		if json.Unmarshal(raw, &c) != nil {
			return unknown
		}
		return CoordinateValue{Latitude: c.Latitude, Longitude: c.Longitude}

	case "wikibase-entityid":
		var ref struct {
			ID         string `json:"id"`
			NumericID  *int64 `json:"numeric-id"`
			EntityType string `json:"entity-type"`
		}
		if json.Unmarshal(raw, &ref) != nil {
			return unknown
		}
		id := ref.ID
		if id == "" && ref.NumericID != nil {
			id = entityPrefix(ref.EntityType) + strconv.FormatInt(*ref.NumericID, 10)
		}
		if id == "" {
			return unknown
		}
		return EntityRefValue{ID: id}
	}

	return unknown
}

// inferType guesses the datavalue type from its JSON shape when "type" is missing.
func inferType(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' {
		return "string"
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(trimmed, &fields) != nil {
		return ""
	}
	has := func(k string) bool { _, ok := fields[k]; return ok }
	switch {
	case has("amount"):
		return "quantity"
	case has("time"):
		return "time"
	case has("latitude") || has("longitude"):
		return "globecoordinate"
	case has("id") || has("numeric-id"):
		return "wikibase-entityid"
	}
	return ""
}

func entityPrefix(entityType string) string {
	switch entityType {
	case "property":
		return "P"
	case "lexeme":
		return "L"
	default:
		return "Q"
	}
}

// scalarText returns a JSON string's contents or a JSON number's literal text.
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if json.Unmarshal(trimmed, &s) != nil {
			return "", false
		}
		return s, true
	}
	var n json.Number
	if json.Unmarshal(trimmed, &n) != nil {
		return "", false
	}
	return n.String(), true
}

// Extractor provides total, typed accessors over one entity's claims.
// Every accessor looks at the first claim of a property only.
type Extractor struct {
	claims map[string][]Claim
}

// NewExtractor wraps entity. A nil entity yields an extractor where everything is absent.
func NewExtractor(entity *Entity) Extractor {
	if entity == nil {
		return Extractor{}
	}
	return Extractor{claims: entity.Claims}
}

func (x Extractor) first(prop string) ClaimValue {
	claims := x.claims[prop]
	if len(claims) == 0 || claims[0].Value == nil {
		return UnknownValue{}
	}
	return claims[0].Value
}

// String returns the first claim of prop if it is a non-empty string.
func (x Extractor) String(prop string) (string, bool) {
	v, ok := x.first(prop).(StringValue)
	if !ok || v == "" {
		return "", false
	}
	return string(v), true
}

// Quantity returns the first claim's amount as a float. "+1572" is 1572.
func (x Extractor) Quantity(prop string) (float64, bool) {
	v, ok := x.first(prop).(QuantityValue)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(v.Amount, "+"), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// TimeYear returns the four characters after the leading sign of the first claim's time.
func (x Extractor) TimeYear(prop string) (string, bool) {
	v, ok := x.first(prop).(TimeValue)
	if !ok {
		return "", false
	}
	t := v.Time
	offset := 0
	if strings.HasPrefix(t, "+") || strings.HasPrefix(t, "-") {
		offset = 1
	}
	if len(t) < offset+4 {
		return "", false
	}
	return t[offset : offset+4], true
}

// EntityRef returns the id referenced by the first claim of prop.
func (x Extractor) EntityRef(prop string) (string, bool) {
	v, ok := x.first(prop).(EntityRefValue)
	if !ok || v.ID == "" {
		return "", false
	}
	return v.ID, true
}

// Coordinate returns the first P625 claim. ok is false unless both sides are present.
func (x Extractor) Coordinate() (lat, lon float64, ok bool) {
	v, isCoord := x.first(PropCoordinate).(CoordinateValue)
	if !isCoord || v.Latitude == nil || v.Longitude == nil {
		return 0, 0, false
	}
	return *v.Latitude, *v.Longitude, true
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Property codes read by the parser.
const (
	PropCoordinate      = "P625"
	PropImage           = "P18"
	PropWebsite         = "P856"
	PropElevation       = "P2044"
	PropInception       = "P571"
	PropCommonsCategory = "P373"
	PropLocatedIn       = "P131"
	PropInstanceOf      = "P31"
	PropCountry         = "P17"
)

// Coordinate is a WGS84 point. Records carry it as a pointer so latitude and
// longitude are always present or absent together.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Fact is one curated label/value pair.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Record is the flat display record built from one entity. Empty strings mean absent.
type Record struct {
	Title        string
	Description  string
	Coord        *Coordinate
	ImageURL     string
	WikipediaURL string
	Facts        []Fact
	RawEntity    json.RawMessage
}

// ParserConfig controls language preference and URL construction.
type ParserConfig struct {
	Languages      []string // label/description preference, first wins
	Wikis          []string // sitelink preference, first wins
	CommonsBaseURL string
	EntityBaseURL  string // prefix for entity links, e.g. https://www.wikidata.org/wiki/
	ImageWidth     int
}

// DefaultParserConfig prefers Greek, then English.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		Languages:      []string{"el", "en"},
		Wikis:          []string{"elwiki", "enwiki"},
		CommonsBaseURL: "https://commons.wikimedia.org",
		EntityBaseURL:  "https://www.wikidata.org/wiki/",
		ImageWidth:     1000,
	}
}

// Parser turns entity documents into display records. It holds no state beyond config.
type Parser struct {
	cfg ParserConfig
}

// NewParser creates a parser.
func NewParser(cfg ParserConfig) *Parser {
	return &Parser{cfg: cfg}
}

type factRule struct {
	prop   string
	label  string
	render func(p *Parser, x Extractor, prop string) (string, bool)
}

// factRules is the fixed output order of facts, independent of claim order in the document.
var factRules = []factRule{
	{PropWebsite, "Official website", renderString},
	{PropElevation, "Elevation", renderElevation},
	{PropInception, "Inception", renderYear},
	{PropCommonsCategory, "Commons category", renderString},
	{PropLocatedIn, "Located in", renderEntityLink},
	{PropInstanceOf, "Instance of", renderEntityLink},
	{PropCountry, "Country", renderEntityLink},
}

func renderString(_ *Parser, x Extractor, prop string) (string, bool) {
	return x.String(prop)
}

func renderElevation(_ *Parser, x Extractor, prop string) (string, bool) {
	v, ok := x.Quantity(prop)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d m", int64(math.Round(v))), true
}

func renderYear(_ *Parser, x Extractor, prop string) (string, bool) {
	return x.TimeYear(prop)
}

func renderEntityLink(p *Parser, x Extractor, prop string) (string, bool) {
	id, ok := x.EntityRef(prop)
	if !ok {
		return "", false
	}
	return p.cfg.EntityBaseURL + id, true
}

// Parse builds the record for id. A document without that entity yields an empty
// record; Parse never fails.
func (p *Parser) Parse(id string, doc *Document) Record {
	entity, ok := doc.Entity(id)
	if !ok {
		return Record{Facts: []Fact{}}
	}

	x := NewExtractor(entity)
	record := Record{
		Title:       firstPresent(entity.Labels, p.cfg.Languages),
		Description: firstPresent(entity.Descriptions, p.cfg.Languages),
		RawEntity:   entity.Raw,
	}

	if lat, lon, ok := x.Coordinate(); ok {
		record.Coord = &Coordinate{Lat: lat, Lon: lon}
	}

	if filename, ok := x.String(PropImage); ok {
		record.ImageURL = p.CommonsFileURL(filename, p.cfg.ImageWidth)
	}

	record.WikipediaURL = p.wikipediaURL(entity.Sitelinks)
	record.Facts = p.facts(x)
	return record
}

func (p *Parser) facts(x Extractor) []Fact {
	facts := make([]Fact, 0, len(factRules))
	for _, rule := range factRules {
		if value, ok := rule.render(p, x, rule.prop); ok {
			facts = append(facts, Fact{Label: rule.label, Value: value})
		}
	}
	return facts
}

// titleEscaper turns a sitelink title into an article path segment. Non-ASCII
// letters stay readable; only the characters that would end or corrupt the
// path are escaped.
var titleEscaper = strings.NewReplacer(" ", "_", "%", "%25", "?", "%3F", "#", "%23")

func (p *Parser) wikipediaURL(sitelinks map[string]string) string {
	for _, wiki := range p.cfg.Wikis {
		title, ok := sitelinks[wiki]
		if !ok {
			continue
		}
		lang := strings.TrimSuffix(wiki, "wiki")
		return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, titleEscaper.Replace(title))
	}
	return ""
}

// CommonsFileURL builds a Special:FilePath URL for a Commons filename at width pixels.
func (p *Parser) CommonsFileURL(filename string, width int) string {
	name := strings.ReplaceAll(strings.TrimSpace(filename), " ", "_")
	return fmt.Sprintf("%s/wiki/Special:FilePath/%s?width=%d",
		strings.TrimRight(p.cfg.CommonsBaseURL, "/"), url.PathEscape(name), width)
}

func firstPresent(values map[string]string, languages []string) string {
	for _, lang := range languages {
		if v := values[lang]; v != "" {
			return v
		}
	}
	return ""
}

// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/tomtom215/poimap/internal/logging"
	"github.com/tomtom215/poimap/internal/metrics"
)

const upstreamWikipedia = "wikipedia"

// summarySentences is how many sentences of the extract are kept.
const summarySentences = 3

// SummaryConfig configures the Wikipedia summary fetcher.
type SummaryConfig struct {
	// RESTBaseURL may contain {lang}, replaced by the article language.
	RESTBaseURL      string
	PrimaryLanguage  string
	FallbackLanguage string
	UserAgent        string
	Timeout          time.Duration
	Breaker          BreakerConfig
}

// DefaultSummaryConfig targets the public REST API with a shorter timeout than entity fetches.
func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{
		RESTBaseURL:      "https://{lang}.wikipedia.org/api/rest_v1",
		PrimaryLanguage:  "el",
		FallbackLanguage: "en",
		UserAgent:        DefaultUserAgent,
		Timeout:          8 * time.Second,
		Breaker:          DefaultBreakerConfig(),
	}
}

// SummaryFetcher retrieves a short prose summary for a Wikipedia article URL.
// Results are not cached.
type SummaryFetcher struct {
	cfg     SummaryConfig
	client  *http.Client
	breaker *Breaker
}

// NewSummaryFetcher creates a summary fetcher with its own breaker.
func NewSummaryFetcher(cfg SummaryConfig) *SummaryFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &SummaryFetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: NewBreaker(upstreamWikipedia, cfg.Breaker),
	}
}

var errNoExtract = errors.New("summary has no extract")

// FetchSummary returns the first three sentences of the article's extract.
func (s *SummaryFetcher) FetchSummary(ctx context.Context, articleURL string) (string, bool) {
	reqURL, lang, ok := s.summaryRequest(articleURL)
	if !ok {
		return "", false
	}

	start := time.Now()
	summary, err := s.fetch(ctx, reqURL, lang)

	result := outcome(err)
	if errors.Is(err, errNoExtract) {
		result = metrics.OutcomeEmpty
	}
	metrics.RecordUpstream(upstreamWikipedia, result, time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("article", articleURL).
			Msg("Wikipedia summary unavailable")
		return "", false
	}
	return summary, true
}

func (s *SummaryFetcher) fetch(ctx context.Context, reqURL, lang string) (string, error) {
	body, err := s.breaker.Execute(func() ([]byte, error) {
		return getBody(ctx, s.client, upstreamWikipedia, reqURL, s.cfg.UserAgent)
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		Extract string `json:"extract"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: wikipedia summary: %w", errDecode, err)
	}

	summary := FirstSentences(payload.Extract, lang, summarySentences)
	if summary == "" {
		return "", errNoExtract
	}
	return summary, nil
}

// SummaryURL maps an article URL to its REST summary endpoint.
// https://el.wikipedia.org/wiki/Λευκός_Πύργος -> <base for el>/page/summary/Λευκός_Πύργος (escaped).
func (s *SummaryFetcher) SummaryURL(articleURL string) (string, bool) {
	reqURL, _, ok := s.summaryRequest(articleURL)
	return reqURL, ok
}

// summaryRequest returns the REST summary URL and the language of the extract it serves.
func (s *SummaryFetcher) summaryRequest(articleURL string) (string, string, bool) {
	u, err := url.Parse(articleURL)
	if err != nil || u.Host == "" {
		return "", "", false
	}

	lang := s.cfg.FallbackLanguage
	if strings.HasPrefix(u.Host, s.cfg.PrimaryLanguage+".") {
		lang = s.cfg.PrimaryLanguage
	}

	escaped, ok := strings.CutPrefix(u.EscapedPath(), "/wiki/")
	if !ok || escaped == "" {
		return "", "", false
	}
	title, err := url.PathUnescape(escaped)
	if err != nil || title == "" {
		return "", "", false
	}

	base := strings.TrimRight(strings.ReplaceAll(s.cfg.RESTBaseURL, "{lang}", lang), "/")
	return base + "/page/summary/" + url.PathEscape(title), lang, true
}

// BreakerState reports the summary breaker state for health checks.
func (s *SummaryFetcher) BreakerState() string {
	return s.breaker.State()
}

// isSentenceEnd reports whether r ends a sentence in lang. U+037E is the Greek
// question mark; Greek text usually carries it as an ASCII semicolon, which is
// only a terminator for Greek.
func isSentenceEnd(r rune, lang string) bool {
	switch r {
	case '.', '!', '?', '\u037e':
		return true
	case ';':
		return lang == "el"
	}
	return false
}

// FirstSentences splits text after sentence-final punctuation followed by
// whitespace and joins the first n sentences with a single space. lang is the
// extract's language code.
func FirstSentences(text, lang string, n int) string {
	text = strings.TrimSpace(text)
	if text == "" || n <= 0 {
		return ""
	}

	runes := []rune(text)
	sentences := make([]string, 0, n)
	start := 0
	for i := 0; i < len(runes) && len(sentences) < n; i++ {
		if !isSentenceEnd(runes[i], lang) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	if len(sentences) < n {
		if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
			sentences = append(sentences, rest)
		}
	}
	return strings.Join(sentences, " ")
}

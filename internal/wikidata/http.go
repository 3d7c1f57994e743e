// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package wikidata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/tomtom215/poimap/internal/metrics"
)

// maxBodyBytes caps a single upstream response. Large Wikidata items run to a few MB.
const maxBodyBytes = 16 << 20

// DefaultUserAgent identifies the service to Wikimedia, which rejects anonymous clients.
const DefaultUserAgent = "POIMap/1.0 (https://github.com/tomtom215/poimap)"

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Upstream   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
}

// Retryable reports whether the status signals an upstream problem rather than a bad request.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// newLimiter returns an unlimited limiter when rps is not positive.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// getBody performs a GET with identification headers and returns the body of a 2xx response.
func getBody(ctx context.Context, client *http.Client, upstream, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", upstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Upstream: upstream, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", upstream, err)
	}
	return body, nil
}

// errDecode marks a payload that arrived but could not be used.
var errDecode = errors.New("decode failed")

// outcome maps a fetch error to its metrics label.
func outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case isRejected(err):
		return metrics.OutcomeRejected
	case errors.As(err, &statusErr):
		return metrics.OutcomeStatus
	case errors.Is(err, errDecode):
		return metrics.OutcomeDecode
	case errors.Is(err, errThrottled):
		return metrics.OutcomeThrottled
	default:
		return metrics.OutcomeTransport
	}
}

// errThrottled wraps limiter wait failures (context cancelled while queued).
var errThrottled = errors.New("rate limiter wait aborted")

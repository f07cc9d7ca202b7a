// Package ingest pulls postings from remote job APIs and writes them to
// storage, annotating each row with extracted skills and experience level.
package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

const (
	httpTimeout = 15 * time.Second

	// Field caps applied during normalization.
	maxDescriptionLen  = 5000
	maxRequirementsLen = 1000
)

// Source fetches and normalizes postings from one external job board.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.JobPosting, error)
}

// newClient returns the shared HTTP client sources use.
func newClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// parseEpoch reads an epoch timestamp that may arrive as a JSON number or
// a numeric string. Returns nil when it is neither.
func parseEpoch(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		// Quoted numeric string, e.g. "1715601600".
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		num = json.Number(s)
	}
	f, err := num.Float64()
	if err != nil {
		return nil
	}
	t := time.Unix(int64(f), 0).UTC()
	return &t
}

// parseNumber reads a float that may arrive as a JSON number or a numeric
// string. Returns nil when absent, unparseable or zero (the boards send 0
// for "not disclosed").
func parseNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		num = json.Number(s)
	}
	f, err := num.Float64()
	if err != nil || f == 0 {
		return nil
	}
	return &f
}

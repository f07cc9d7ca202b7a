// Package dedup finds near-duplicate postings within the active set.
//
// The scan compares all unordered pairs exactly once. O(n²), fine at the
// stored dataset scale (hundreds of rows). Blocking by company plus a title
// prefix is the upgrade path if the corpus grows.
package dedup

import (
	"context"
	"strings"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// Reasons a pair is reported.
const (
	ReasonExactID      = "exact_id"
	ReasonSimilarTitle = "similar_title_same_company"
)

// DefaultThreshold is the similarity cutoff for the fuzzy-title check.
const DefaultThreshold = 0.85

// Pair is a derived, non-persisted duplicate candidate.
type Pair struct {
	Job1ID     string  `json:"job1Id"`
	Job2ID     string  `json:"job2Id"`
	Reason     string  `json:"reason"`
	Similarity float64 `json:"similarity"`
	Title1     string  `json:"title1,omitempty"`
	Title2     string  `json:"title2,omitempty"`
	Company    string  `json:"company,omitempty"`
}

// ActivityStore is the slice of storage the detector needs.
type ActivityStore interface {
	ActivePostings(ctx context.Context) ([]model.JobPosting, error)
	SetActive(ctx context.Context, jobID string, active bool) error
}

// Detector scans active postings for duplicates and can soft-delete them.
type Detector struct {
	db        ActivityStore
	threshold float64
}

// New returns a Detector. threshold <= 0 falls back to DefaultThreshold.
func New(db ActivityStore, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{db: db, threshold: threshold}
}

// FindDuplicates loads the active set and runs the pairwise scan.
func (d *Detector) FindDuplicates(ctx context.Context) ([]Pair, error) {
	postings, err := d.db.ActivePostings(ctx)
	if err != nil {
		return nil, err
	}
	return DetectPairs(postings, d.threshold), nil
}

// MarkDuplicate soft-deletes a posting (is_active=false). Idempotent:
// marking twice leaves the same state as once. History is kept.
func (d *Detector) MarkDuplicate(ctx context.Context, jobID string) error {
	return d.db.SetActive(ctx, jobID, false)
}

// DetectPairs compares every unordered pair of active postings exactly
// once. Identical external ids are reported as exact_id regardless of title
// or company; otherwise postings at the same company (exact, case-sensitive
// match) with title similarity at or above threshold are reported as
// similar_title_same_company. A posting is never paired with itself and no
// pair appears twice.
func DetectPairs(postings []model.JobPosting, threshold float64) []Pair {
	active := make([]model.JobPosting, 0, len(postings))
	for _, p := range postings {
		if p.IsActive {
			active = append(active, p)
		}
	}

	pairs := make([]Pair, 0)
	checked := make(map[[2]int64]bool)

	for i, a := range active {
		for _, b := range active[i+1:] {
			key := pairKey(a.ID, b.ID)
			if checked[key] {
				continue
			}
			checked[key] = true

			if a.JobID == b.JobID {
				pairs = append(pairs, Pair{
					Job1ID:     a.JobID,
					Job2ID:     b.JobID,
					Reason:     ReasonExactID,
					Similarity: 1.0,
				})
				continue
			}

			if a.Company != b.Company {
				continue
			}
			sim := Ratio(strings.ToLower(a.Title), strings.ToLower(b.Title))
			if sim >= threshold {
				pairs = append(pairs, Pair{
					Job1ID:     a.JobID,
					Job2ID:     b.JobID,
					Reason:     ReasonSimilarTitle,
					Similarity: sim,
					Title1:     a.Title,
					Title2:     b.Title,
					Company:    a.Company,
				})
			}
		}
	}
	return pairs
}

func pairKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

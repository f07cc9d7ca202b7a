package dedup_test

import (
	"context"
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/dedup"
	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// fakeActivity records SetActive calls against a fixed posting set.
type fakeActivity struct {
	postings []model.JobPosting
	active   map[string]bool
}

func newFakeActivity(postings []model.JobPosting) *fakeActivity {
	active := make(map[string]bool)
	for _, p := range postings {
		active[p.JobID] = p.IsActive
	}
	return &fakeActivity{postings: postings, active: active}
}

func (f *fakeActivity) ActivePostings(_ context.Context) ([]model.JobPosting, error) {
	out := make([]model.JobPosting, 0)
	for _, p := range f.postings {
		if f.active[p.JobID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeActivity) SetActive(_ context.Context, jobID string, active bool) error {
	f.active[jobID] = active
	return nil
}

// ── DetectPairs ────────────────────────────────────────────────────────────

func TestDetectPairs_ExactID(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "remoteok_42", Title: "Backend Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "remoteok_42", Title: "Totally Different Role", Company: "Other Corp", IsActive: true},
	}

	pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold)
	if len(pairs) != 1 {
		t.Fatalf("DetectPairs returned %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if p.Reason != dedup.ReasonExactID {
		t.Errorf("Reason = %q, want %q", p.Reason, dedup.ReasonExactID)
	}
	if p.Similarity != 1.0 {
		t.Errorf("Similarity = %v, want 1.0", p.Similarity)
	}
}

func TestDetectPairs_SimilarTitleSameCompany(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "a", Title: "Senior Software Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "SENIOR SOFTWARE ENGINEER", Company: "Acme", IsActive: true},
	}

	pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold)
	if len(pairs) != 1 {
		t.Fatalf("DetectPairs returned %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if p.Reason != dedup.ReasonSimilarTitle {
		t.Errorf("Reason = %q, want %q", p.Reason, dedup.ReasonSimilarTitle)
	}
	if p.Similarity < dedup.DefaultThreshold {
		t.Errorf("Similarity = %v, below threshold", p.Similarity)
	}
	if p.Company != "Acme" {
		t.Errorf("Company = %q, want Acme", p.Company)
	}
}

func TestDetectPairs_SameTitleDifferentCompany(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "a", Title: "Senior Software Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "Senior Software Engineer", Company: "Globex", IsActive: true},
	}

	if pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold); len(pairs) != 0 {
		t.Errorf("DetectPairs = %v, want no pairs across companies", pairs)
	}
}

func TestDetectPairs_BelowThreshold(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "a", Title: "Backend Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "Product Designer", Company: "Acme", IsActive: true},
	}

	if pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold); len(pairs) != 0 {
		t.Errorf("DetectPairs = %v, want no pairs for dissimilar titles", pairs)
	}
}

func TestDetectPairs_IgnoresInactive(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "a", Title: "Senior Software Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "Senior Software Engineer", Company: "Acme", IsActive: false},
	}

	if pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold); len(pairs) != 0 {
		t.Errorf("DetectPairs = %v, want inactive postings excluded", pairs)
	}
}

func TestDetectPairs_NoSelfOrRepeatPairs(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, JobID: "a", Title: "Software Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "Software Engineer", Company: "Acme", IsActive: true},
		{ID: 3, JobID: "c", Title: "Software Engineer", Company: "Acme", IsActive: true},
	}

	pairs := dedup.DetectPairs(postings, dedup.DefaultThreshold)
	// three postings, three unordered pairs, each reported once
	if len(pairs) != 3 {
		t.Fatalf("DetectPairs returned %d pairs, want 3", len(pairs))
	}
	seen := make(map[[2]string]bool)
	for _, p := range pairs {
		if p.Job1ID == p.Job2ID {
			t.Errorf("self pair reported: %v", p)
		}
		key := [2]string{p.Job1ID, p.Job2ID}
		if p.Job1ID > p.Job2ID {
			key = [2]string{p.Job2ID, p.Job1ID}
		}
		if seen[key] {
			t.Errorf("pair %v reported twice", key)
		}
		seen[key] = true
	}
}

func TestDetectPairs_Empty(t *testing.T) {
	if pairs := dedup.DetectPairs(nil, dedup.DefaultThreshold); len(pairs) != 0 {
		t.Errorf("DetectPairs(nil) = %v, want empty", pairs)
	}
}

// ── Detector ───────────────────────────────────────────────────────────────

func TestFindDuplicates(t *testing.T) {
	db := newFakeActivity([]model.JobPosting{
		{ID: 1, JobID: "a", Title: "Data Engineer", Company: "Acme", IsActive: true},
		{ID: 2, JobID: "b", Title: "Data Engineer", Company: "Acme", IsActive: true},
		{ID: 3, JobID: "c", Title: "Product Designer", Company: "Globex", IsActive: true},
	})
	d := dedup.New(db, 0) // falls back to DefaultThreshold

	pairs, err := d.FindDuplicates(context.Background())
	if err != nil {
		t.Fatalf("FindDuplicates returned unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("FindDuplicates returned %d pairs, want 1", len(pairs))
	}
}

func TestMarkDuplicate_Idempotent(t *testing.T) {
	db := newFakeActivity([]model.JobPosting{
		{ID: 1, JobID: "a", Title: "Data Engineer", Company: "Acme", IsActive: true},
	})
	d := dedup.New(db, dedup.DefaultThreshold)

	for i := 0; i < 2; i++ {
		if err := d.MarkDuplicate(context.Background(), "a"); err != nil {
			t.Fatalf("MarkDuplicate call %d returned error: %v", i+1, err)
		}
	}
	if db.active["a"] {
		t.Error("posting still active after MarkDuplicate")
	}

	active, _ := db.ActivePostings(context.Background())
	if len(active) != 0 {
		t.Errorf("ActivePostings = %v, want empty after soft delete", active)
	}
}

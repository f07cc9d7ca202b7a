package dedup_test

import (
	"math"
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/dedup"
)

// ── Ratio ──────────────────────────────────────────────────────────────────

func TestRatio_Identical(t *testing.T) {
	cases := []string{"", "a", "senior software engineer"}
	for _, s := range cases {
		if got := dedup.Ratio(s, s); got != 1.0 {
			t.Errorf("Ratio(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if got := dedup.Ratio("abc", "xyz"); got != 0 {
		t.Errorf("Ratio(abc, xyz) = %v, want 0", got)
	}
}

func TestRatio_OneEmpty(t *testing.T) {
	if got := dedup.Ratio("abc", ""); got != 0 {
		t.Errorf("Ratio(abc, \"\") = %v, want 0", got)
	}
}

func TestRatio_KnownValues(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		// longest block "bcd", nothing on either side: 2*3/8
		{"abcd", "bcde", 0.75},
		// one is a prefix of the other: 2*17/37
		{"software engineer", "software engineer ii", 34.0 / 37.0},
	}
	for _, c := range cases {
		if got := dedup.Ratio(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestRatio_Range(t *testing.T) {
	pairs := [][2]string{
		{"data scientist", "data engineer"},
		{"fullstack developer", "full stack developer"},
		{"x", "yy"},
	}
	for _, p := range pairs {
		got := dedup.Ratio(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Ratio(%q, %q) = %v, outside [0,1]", p[0], p[1], got)
		}
	}
}

func TestRatio_NearDuplicateTitlesCrossThreshold(t *testing.T) {
	// The fuzzy-title rule depends on near-identical titles landing at or
	// above 0.85 while genuinely different roles land below it.
	sim := dedup.Ratio("software engineer", "software engineer ii")
	if sim < dedup.DefaultThreshold {
		t.Errorf("near-duplicate titles scored %v, below threshold %v", sim, dedup.DefaultThreshold)
	}
	diff := dedup.Ratio("backend engineer", "product designer")
	if diff >= dedup.DefaultThreshold {
		t.Errorf("unrelated titles scored %v, at or above threshold %v", diff, dedup.DefaultThreshold)
	}
}

package skills_test

import (
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/skills"
)

// ── ExtractSalary ──────────────────────────────────────────────────────────

func TestExtractSalary(t *testing.T) {
	cases := []struct {
		text    string
		wantMin float64
		wantMax float64
	}{
		{"$100k - $150k", 100000, 150000},
		{"$100k-$150k", 100000, 150000},
		{"Salary: $90,000 - $120,000 per year", 90000, 120000},
		{"100,000 - 150,000 USD", 100000, 150000},
		{"we pay between $85k - $110k", 85000, 110000},
	}
	for _, c := range cases {
		min, max := skills.ExtractSalary(c.text)
		if min == nil || max == nil {
			t.Errorf("ExtractSalary(%q) = (%v, %v), want a range", c.text, min, max)
			continue
		}
		if *min != c.wantMin || *max != c.wantMax {
			t.Errorf("ExtractSalary(%q) = (%v, %v), want (%v, %v)",
				c.text, *min, *max, c.wantMin, c.wantMax)
		}
	}
}

func TestExtractSalary_NoMatch(t *testing.T) {
	cases := []string{
		"",
		"competitive salary",
		"salary depends on experience",
	}
	for _, text := range cases {
		min, max := skills.ExtractSalary(text)
		if min != nil || max != nil {
			t.Errorf("ExtractSalary(%q) = (%v, %v), want (nil, nil)", text, min, max)
		}
	}
}

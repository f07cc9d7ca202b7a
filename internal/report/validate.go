package report

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

var urlPattern = regexp.MustCompile(`^https?://\S+`)

// FieldGap reports how many postings miss one field.
type FieldGap struct {
	Field      string  `json:"field"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missingPct"`
}

// ValidationReport summarizes data-quality checks over a snapshot.
type ValidationReport struct {
	TotalPostings       int        `json:"totalPostings"`
	FieldGaps           []FieldGap `json:"fieldGaps"`
	InvalidSalaryRanges int        `json:"invalidSalaryRanges"` // min > max
	SalaryOutliers      int        `json:"salaryOutliers"`      // min > 3x average min
	InvalidURLs         int        `json:"invalidUrls"`
	ShortDescriptions   int        `json:"shortDescriptions"` // < 50 chars
	LongRequirements    int        `json:"longRequirements"`  // > 1000 chars
	Issues              []string   `json:"issues"`
}

// Validate runs the data-quality checks the validation report is built
// from: completeness, salary consistency, outliers, URL shape and text
// quality. Purely diagnostic; nothing is fixed or persisted.
func Validate(postings []model.JobPosting) ValidationReport {
	rep := ValidationReport{
		TotalPostings: len(postings),
		FieldGaps:     []FieldGap{},
		Issues:        []string{},
	}
	if len(postings) == 0 {
		return rep
	}

	missing := map[string]int{}
	var (
		salarySum   float64
		salaryCount int
	)

	for _, p := range postings {
		if p.Title == "" {
			missing["title"]++
		}
		if p.Company == "" {
			missing["company"]++
		}
		if p.Location == "" {
			missing["location"]++
		}
		if p.SalaryMin == nil {
			missing["salary_min"]++
		}
		if p.SalaryMax == nil {
			missing["salary_max"]++
		}
		if p.Description == "" {
			missing["description"]++
		}
		if p.URL == "" {
			missing["url"]++
		} else if !urlPattern.MatchString(p.URL) {
			rep.InvalidURLs++
		}

		if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
			rep.InvalidSalaryRanges++
		}
		if p.SalaryMin != nil {
			salarySum += *p.SalaryMin
			salaryCount++
		}

		if p.Description != "" && len(p.Description) < 50 {
			rep.ShortDescriptions++
		}
		if len(p.Requirements) > 1000 {
			rep.LongRequirements++
		}
	}

	if salaryCount > 0 {
		avgMin := salarySum / float64(salaryCount)
		for _, p := range postings {
			if p.SalaryMin != nil && *p.SalaryMin > avgMin*3 {
				rep.SalaryOutliers++
			}
		}
	}

	fields := make([]string, 0, len(missing))
	for f := range missing {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		pct := float64(missing[f]) / float64(len(postings)) * 100
		rep.FieldGaps = append(rep.FieldGaps, FieldGap{Field: f, Missing: missing[f], MissingPct: pct})
		if pct > 10 {
			rep.Issues = append(rep.Issues, fmt.Sprintf("high missing rate in %s: %.1f%%", f, pct))
		}
	}
	if rep.InvalidSalaryRanges > 0 {
		rep.Issues = append(rep.Issues, fmt.Sprintf("%d postings with min salary above max", rep.InvalidSalaryRanges))
	}
	if rep.InvalidURLs > 0 {
		rep.Issues = append(rep.Issues, fmt.Sprintf("%d postings with malformed URLs", rep.InvalidURLs))
	}

	return rep
}

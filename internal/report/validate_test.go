package report_test

import (
	"strings"
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
	"github.com/NidaKhaan/job-market-intelligence/internal/report"
)

func fptr(v float64) *float64 { return &v }

func cleanPosting() model.JobPosting {
	return model.JobPosting{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Location:     "Remote",
		SalaryMin:    fptr(90000),
		SalaryMax:    fptr(120000),
		Description:  strings.Repeat("responsibilities and context ", 5),
		Requirements: "go, postgresql",
		URL:          "https://example.com/jobs/1",
	}
}

// ── Validate ───────────────────────────────────────────────────────────────

func TestValidate_CleanSnapshot(t *testing.T) {
	rep := report.Validate([]model.JobPosting{cleanPosting(), cleanPosting()})

	if rep.TotalPostings != 2 {
		t.Errorf("TotalPostings = %d, want 2", rep.TotalPostings)
	}
	if rep.InvalidSalaryRanges != 0 || rep.InvalidURLs != 0 ||
		rep.ShortDescriptions != 0 || rep.LongRequirements != 0 {
		t.Errorf("clean snapshot reported problems: %+v", rep)
	}
	if len(rep.Issues) != 0 {
		t.Errorf("Issues = %v, want none", rep.Issues)
	}
}

func TestValidate_Empty(t *testing.T) {
	rep := report.Validate(nil)
	if rep.TotalPostings != 0 || len(rep.Issues) != 0 {
		t.Errorf("Validate(nil) = %+v, want empty report", rep)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	p := cleanPosting()
	p.Company = ""
	p.Location = ""
	rep := report.Validate([]model.JobPosting{p})

	gaps := make(map[string]int)
	for _, g := range rep.FieldGaps {
		gaps[g.Field] = g.Missing
	}
	if gaps["company"] != 1 {
		t.Errorf("company gap = %d, want 1", gaps["company"])
	}
	if gaps["location"] != 1 {
		t.Errorf("location gap = %d, want 1", gaps["location"])
	}
	// 100% missing is over the 10% issue threshold
	found := false
	for _, issue := range rep.Issues {
		if strings.Contains(issue, "company") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want a high-missing-rate entry for company", rep.Issues)
	}
}

func TestValidate_InvertedSalaryRange(t *testing.T) {
	p := cleanPosting()
	p.SalaryMin = fptr(150000)
	p.SalaryMax = fptr(100000)
	rep := report.Validate([]model.JobPosting{p})

	if rep.InvalidSalaryRanges != 1 {
		t.Errorf("InvalidSalaryRanges = %d, want 1", rep.InvalidSalaryRanges)
	}
	if len(rep.Issues) == 0 {
		t.Error("inverted range should surface an issue")
	}
}

func TestValidate_SalaryOutlier(t *testing.T) {
	postings := []model.JobPosting{cleanPosting(), cleanPosting(), cleanPosting()}
	for i := range postings {
		postings[i].SalaryMin = fptr(50000)
		postings[i].SalaryMax = fptr(60000)
	}
	outlier := cleanPosting()
	// min well above 3x the average min across the snapshot
	outlier.SalaryMin = fptr(900000)
	outlier.SalaryMax = fptr(950000)
	postings = append(postings, outlier)

	rep := report.Validate(postings)
	if rep.SalaryOutliers != 1 {
		t.Errorf("SalaryOutliers = %d, want 1", rep.SalaryOutliers)
	}
}

func TestValidate_MalformedURL(t *testing.T) {
	p := cleanPosting()
	p.URL = "not-a-url"
	rep := report.Validate([]model.JobPosting{p})

	if rep.InvalidURLs != 1 {
		t.Errorf("InvalidURLs = %d, want 1", rep.InvalidURLs)
	}
}

func TestValidate_TextQuality(t *testing.T) {
	short := cleanPosting()
	short.Description = "tiny"
	long := cleanPosting()
	long.Requirements = strings.Repeat("x", 1001)

	rep := report.Validate([]model.JobPosting{short, long})
	if rep.ShortDescriptions != 1 {
		t.Errorf("ShortDescriptions = %d, want 1", rep.ShortDescriptions)
	}
	if rep.LongRequirements != 1 {
		t.Errorf("LongRequirements = %d, want 1", rep.LongRequirements)
	}
}

// Package model defines shared data structures for the job market service.
package model

import "time"

// Experience levels derived from posting titles. Stored verbatim in the
// experience_level column and compared ordinally by the scorer.
const (
	ExperienceJunior       = "Junior"
	ExperienceMidLevel     = "Mid-Level"
	ExperienceSenior       = "Senior"
	ExperienceNotSpecified = "Not specified"
)

// JobPosting mirrors a row of the jobs table: one normalized record per
// distinct external listing.
//
// JobID is the externally sourced unique id (source prefix + native id,
// e.g. "remoteok_1093412"). Re-ingesting the same JobID updates the row in
// place and refreshes ScrapedAt; it never creates a second row.
type JobPosting struct {
	ID              int64      `json:"id"`
	JobID           string     `json:"jobId"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	SalaryMin       *float64   `json:"salaryMin"`
	SalaryMax       *float64   `json:"salaryMax"`
	Description     string     `json:"description"`
	Requirements    string     `json:"requirements"`
	URL             string     `json:"url"`
	Source          string     `json:"source"`
	PostedDate      *time.Time `json:"postedDate"`
	ScrapedAt       time.Time  `json:"scrapedAt"`
	IsActive        bool       `json:"isActive"`
	ExtractedSkills []string   `json:"extractedSkills"`
	ExperienceLevel string     `json:"experienceLevel"`
}

// CombinedText returns the free text used for skill extraction.
func (p JobPosting) CombinedText() string {
	return p.Title + " " + p.Description + " " + p.Requirements
}

// IngestRun records one ingestion cycle, successful or not.
type IngestRun struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"startedAt"`
	FinishedAt   *time.Time `json:"finishedAt"`
	Success      bool       `json:"success"`
	JobsIngested int        `json:"jobsIngested"`
	JobsUpdated  int        `json:"jobsUpdated"`
	Error        string     `json:"error,omitempty"`
}

// Preferences is the caller-supplied profile used by the opportunity scorer.
// Zero-value fields fall back to the documented defaults via WithDefaults.
type Preferences struct {
	MinSalary         float64  `json:"minSalary"`
	PreferredLocation string   `json:"preferredLocation"`
	RequiredSkills    []string `json:"requiredSkills"`
	NiceToHaveSkills  []string `json:"niceToHaveSkills"`
	ExperienceLevel   string   `json:"experienceLevel"`
}

// DefaultPreferences returns the documented defaults: 80k minimum salary,
// remote, senior.
func DefaultPreferences() Preferences {
	return Preferences{
		MinSalary:         80000,
		PreferredLocation: "Remote",
		ExperienceLevel:   ExperienceSenior,
	}
}

// WithDefaults fills unset fields from DefaultPreferences.
func (p Preferences) WithDefaults() Preferences {
	d := DefaultPreferences()
	if p.MinSalary <= 0 {
		p.MinSalary = d.MinSalary
	}
	if p.PreferredLocation == "" {
		p.PreferredLocation = d.PreferredLocation
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = d.ExperienceLevel
	}
	return p
}

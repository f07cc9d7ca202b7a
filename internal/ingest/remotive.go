package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
	"github.com/NidaKhaan/job-market-intelligence/internal/skills"
)

const remotiveSourceName = "Remotive"

// RemotiveSource fetches postings from the Remotive public API.
type RemotiveSource struct {
	URL     string
	MaxJobs int
	client  *http.Client
}

// NewRemotiveSource constructs the source with a shared HTTP client.
func NewRemotiveSource(url string, maxJobs int) *RemotiveSource {
	return &RemotiveSource{URL: url, MaxJobs: maxJobs, client: newClient()}
}

// Name implements Source.
func (s *RemotiveSource) Name() string { return remotiveSourceName }

// remotiveResponse mirrors the top-level Remotive JSON response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company_name"`
	Category    string      `json:"category"`
	Tags        []string    `json:"tags"`
	URL         string      `json:"url"`
	Location    string      `json:"candidate_required_location"`
	Salary      string      `json:"salary"`
	Description string      `json:"description"`
	Published   string      `json:"publication_date"`
}

// Fetch retrieves and normalizes up to MaxJobs postings.
func (s *RemotiveSource) Fetch(ctx context.Context) ([]model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive returned %d: %s", resp.StatusCode, string(body))
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := apiResp.Jobs
	if s.MaxJobs > 0 && len(jobs) > s.MaxJobs {
		jobs = jobs[:s.MaxJobs]
	}

	postings := make([]model.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if job.ID.String() == "" {
			continue
		}
		postings = append(postings, s.normalize(job))
	}
	return postings, nil
}

func (s *RemotiveSource) normalize(job remotiveJob) model.JobPosting {
	location := job.Location
	if location == "" {
		location = "Remote"
	}

	// Category plus tags stand in for a requirements field.
	requirements := job.Category
	if len(job.Tags) > 0 {
		requirements += ", " + strings.Join(job.Tags, ", ")
	}

	posted := parsePublicationDate(job.Published)

	// Remotive discloses salary as free text ("$100k - $130k", "competitive").
	salaryMin, salaryMax := skills.ExtractSalary(job.Salary)

	return model.JobPosting{
		JobID:        "remotive_" + job.ID.String(),
		Title:        job.Title,
		Company:      job.Company,
		Location:     location,
		SalaryMin:    salaryMin,
		SalaryMax:    salaryMax,
		Description:  truncate(job.Description, maxDescriptionLen),
		Requirements: truncate(requirements, maxRequirementsLen),
		URL:          job.URL,
		Source:       remotiveSourceName,
		PostedDate:   posted,
	}
}

func parsePublicationDate(s string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	now := time.Now().UTC()
	return &now
}

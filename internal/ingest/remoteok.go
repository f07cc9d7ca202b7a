package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

const remoteokSourceName = "RemoteOK"

// RemoteOKSource fetches postings from the RemoteOK public API. The API
// returns a single JSON array whose first element is a legal-notice object,
// not a job.
type RemoteOKSource struct {
	URL     string
	MaxJobs int
	client  *http.Client
}

// NewRemoteOKSource constructs the source with a shared HTTP client.
func NewRemoteOKSource(url string, maxJobs int) *RemoteOKSource {
	return &RemoteOKSource{URL: url, MaxJobs: maxJobs, client: newClient()}
}

// Name implements Source.
func (s *RemoteOKSource) Name() string { return remoteokSourceName }

// remoteokJob mirrors one RemoteOK listing. Numeric fields arrive as
// numbers or strings depending on the listing's age, hence RawMessage.
type remoteokJob struct {
	ID        json.Number     `json:"id"`
	Position  string          `json:"position"`
	Company   string          `json:"company"`
	Location  string          `json:"location"`
	SalaryMin json.RawMessage `json:"salary_min"`
	SalaryMax json.RawMessage `json:"salary_max"`
	Desc      string          `json:"description"`
	Tags      []string        `json:"tags"`
	URL       string          `json:"url"`
	Date      json.RawMessage `json:"date"`
}

// Fetch retrieves and normalizes up to MaxJobs postings. Listings that fail
// to decode are skipped, not fatal.
func (s *RemoteOKSource) Fetch(ctx context.Context) ([]model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

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
		return nil, fmt.Errorf("remoteok returned %d: %s", resp.StatusCode, string(body))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(items) > 0 {
		items = items[1:] // first element is API metadata
	}
	if s.MaxJobs > 0 && len(items) > s.MaxJobs {
		items = items[:s.MaxJobs]
	}

	postings := make([]model.JobPosting, 0, len(items))
	for _, raw := range items {
		var job remoteokJob
		if err := json.Unmarshal(raw, &job); err != nil {
			log.Printf("[remoteok] skipping undecodable listing: %v", err)
			continue
		}
		if job.ID.String() == "" {
			continue
		}
		postings = append(postings, s.normalize(job))
	}
	return postings, nil
}

func (s *RemoteOKSource) normalize(job remoteokJob) model.JobPosting {
	id := job.ID.String()

	location := job.Location
	if location == "" {
		location = "Remote"
	}

	url := job.URL
	if url == "" {
		url = "https://remoteok.com/remote-jobs/" + id
	}

	posted := parseEpoch(job.Date)
	if posted == nil {
		now := time.Now().UTC()
		posted = &now
	}

	return model.JobPosting{
		JobID:        "remoteok_" + id,
		Title:        job.Position,
		Company:      job.Company,
		Location:     location,
		SalaryMin:    parseNumber(job.SalaryMin),
		SalaryMax:    parseNumber(job.SalaryMax),
		Description:  truncate(job.Desc, maxDescriptionLen),
		Requirements: truncate(strings.Join(job.Tags, ", "), maxRequirementsLen),
		URL:          url,
		Source:       remoteokSourceName,
		PostedDate:   posted,
	}
}

// Package store persists job postings and ingest runs in PostgreSQL.
//
// It is the only package that speaks SQL; everything above it works with
// model values. Soft delete only: rows are deactivated, never removed.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// ErrNotFound is returned when a posting id does not exist.
var ErrNotFound = fmt.Errorf("posting not found")

// psql builds queries with $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store wraps the connection pool with typed accessors.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a configured Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const postingColumns = `id, job_id, title, company, location, salary_min, salary_max,
	description, requirements, url, source, posted_date, scraped_at,
	is_active, extracted_skills, experience_level`

// scanPosting reads one posting row. Malformed extracted_skills JSON is
// treated as an empty list, never as an error.
func scanPosting(row pgx.Row) (model.JobPosting, error) {
	var (
		p         model.JobPosting
		rawSkills []byte
		expLevel  *string
	)
	err := row.Scan(
		&p.ID, &p.JobID, &p.Title, &p.Company, &p.Location,
		&p.SalaryMin, &p.SalaryMax, &p.Description, &p.Requirements,
		&p.URL, &p.Source, &p.PostedDate, &p.ScrapedAt,
		&p.IsActive, &rawSkills, &expLevel,
	)
	if err != nil {
		return model.JobPosting{}, err
	}

	p.ExtractedSkills = []string{}
	if len(rawSkills) > 0 {
		var skillList []string
		if err := json.Unmarshal(rawSkills, &skillList); err == nil {
			p.ExtractedSkills = skillList
		}
	}
	if expLevel != nil {
		p.ExperienceLevel = *expLevel
	}
	return p, nil
}

// GetPosting returns a single posting by external job id.
// Returns ErrNotFound for unknown ids.
func (s *Store) GetPosting(ctx context.Context, jobID string) (*model.JobPosting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM jobs WHERE job_id = $1`, jobID)
	p, err := scanPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getPosting: %w", err)
	}
	return &p, nil
}

// Filter narrows GetPostings. The zero value returns everything.
type Filter struct {
	ActiveOnly   bool
	Source       string
	Company      string
	ScrapedSince *time.Time
	Limit        int
	Offset       int
}

// GetPostings returns postings matching the filter, newest-scraped first.
func (s *Store) GetPostings(ctx context.Context, f Filter) ([]model.JobPosting, error) {
	q := psql.Select(postingColumns).From("jobs").OrderBy("scraped_at DESC")
	if f.ActiveOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}
	if f.Source != "" {
		q = q.Where(sq.Eq{"source": f.Source})
	}
	if f.Company != "" {
		q = q.Where(sq.Eq{"company": f.Company})
	}
	if f.ScrapedSince != nil {
		q = q.Where(sq.GtOrEq{"scraped_at": *f.ScrapedSince})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sqlText, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("getPostings build: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("getPostings query: %w", err)
	}
	defer rows.Close()

	postings := make([]model.JobPosting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("getPostings scan: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// UpsertPosting inserts a posting or, when the external id already exists,
// updates the mutable fields and refreshes scraped_at. Returns true when a
// new row was created.
func (s *Store) UpsertPosting(ctx context.Context, p model.JobPosting) (created bool, err error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (job_id, title, company, location, salary_min, salary_max,
		                   description, requirements, url, source, posted_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (job_id) DO NOTHING`,
		p.JobID, p.Title, p.Company, p.Location, p.SalaryMin, p.SalaryMax,
		p.Description, p.Requirements, p.URL, p.Source, p.PostedDate,
	)
	if err != nil {
		return false, fmt.Errorf("upsert insert: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Existing row: refresh mutable fields and the scrape timestamp in one
	// statement so a partial update is never visible.
	_, err = s.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, company = $3, location = $4,
		     salary_min = $5, salary_max = $6,
		     description = $7, requirements = $8, url = $9,
		     scraped_at = NOW()
		 WHERE job_id = $1`,
		p.JobID, p.Title, p.Company, p.Location, p.SalaryMin, p.SalaryMax,
		p.Description, p.Requirements, p.URL,
	)
	if err != nil {
		return false, fmt.Errorf("upsert update: %w", err)
	}
	return false, nil
}

// UpdateInsights stores the derived annotation fields for one posting in a
// single statement.
func (s *Store) UpdateInsights(ctx context.Context, jobID string, skillList []string, experienceLevel string) error {
	raw, err := json.Marshal(skillList)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs
		 SET extracted_skills = $2::jsonb, experience_level = $3
		 WHERE job_id = $1`,
		jobID, string(raw), experienceLevel,
	)
	if err != nil {
		return fmt.Errorf("updateInsights: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag. Idempotent; unknown ids return
// ErrNotFound.
func (s *Store) SetActive(ctx context.Context, jobID string, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET is_active = $2 WHERE job_id = $1`, jobID, active)
	if err != nil {
		return fmt.Errorf("setActive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByCompany returns how many active postings a company has.
// Company names compare exactly, matching the ingestion normalization.
func (s *Store) CountActiveByCompany(ctx context.Context, company string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE company = $1 AND is_active = TRUE`, company,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("countActiveByCompany: %w", err)
	}
	return n, nil
}

// ActivePostings returns every active posting, newest-scraped first.
func (s *Store) ActivePostings(ctx context.Context) ([]model.JobPosting, error) {
	return s.GetPostings(ctx, Filter{ActiveOnly: true})
}

// RecentPostings returns active postings scraped within the last N hours.
func (s *Store) RecentPostings(ctx context.Context, hours int) ([]model.JobPosting, error) {
	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	return s.GetPostings(ctx, Filter{ActiveOnly: true, ScrapedSince: &since})
}

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

const searchLimit = 50

// SearchParams are the free-form search filters exposed by /api/search.
type SearchParams struct {
	Query    string // matches title or requirements
	Location string
	Company  string
}

// Search returns active postings matching the given filters, newest-scraped
// first, capped at 50 rows.
func (s *Store) Search(ctx context.Context, params SearchParams) ([]model.JobPosting, error) {
	q := psql.Select(postingColumns).
		From("jobs").
		Where(sq.Eq{"is_active": true}).
		OrderBy("scraped_at DESC").
		Limit(searchLimit)

	if params.Query != "" {
		like := "%" + params.Query + "%"
		q = q.Where(sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"requirements": like},
		})
	}
	if params.Location != "" {
		q = q.Where(sq.ILike{"location": "%" + params.Location + "%"})
	}
	if params.Company != "" {
		q = q.Where(sq.ILike{"company": "%" + params.Company + "%"})
	}

	sqlText, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("search build: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	postings := make([]model.JobPosting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("search scan: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

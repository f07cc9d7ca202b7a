package store

import (
	"context"
	"fmt"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// LogRun records a finished ingestion cycle.
func (s *Store) LogRun(ctx context.Context, run model.IngestRun) error {
	var errMsg *string
	if run.Error != "" {
		errMsg = &run.Error
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ingest_runs (id, started_at, finished_at, success, jobs_ingested, jobs_updated, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Success,
		run.JobsIngested, run.JobsUpdated, errMsg,
	)
	if err != nil {
		return fmt.Errorf("logRun: %w", err)
	}
	return nil
}

// RecentRuns returns the latest ingestion runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, started_at, finished_at, success, jobs_ingested, jobs_updated,
		        COALESCE(error_message, '')
		 FROM ingest_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recentRuns query: %w", err)
	}
	defer rows.Close()

	runs := make([]model.IngestRun, 0)
	for rows.Next() {
		var r model.IngestRun
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Success,
			&r.JobsIngested, &r.JobsUpdated, &r.Error); err != nil {
			return nil, fmt.Errorf("recentRuns scan: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

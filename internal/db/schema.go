package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the tables the service needs if they do not exist yet.
// jobs rows are never hard-deleted; is_active is the soft-delete flag.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id               BIGSERIAL PRIMARY KEY,
			job_id           TEXT UNIQUE NOT NULL,
			title            TEXT NOT NULL,
			company          TEXT NOT NULL DEFAULT '',
			location         TEXT NOT NULL DEFAULT '',
			salary_min       NUMERIC,
			salary_max       NUMERIC,
			description      TEXT NOT NULL DEFAULT '',
			requirements     TEXT NOT NULL DEFAULT '',
			url              TEXT NOT NULL DEFAULT '',
			source           TEXT NOT NULL DEFAULT '',
			posted_date      TIMESTAMPTZ,
			scraped_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_active        BOOLEAN NOT NULL DEFAULT TRUE,
			extracted_skills JSONB,
			experience_level TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS jobs_company_active_idx ON jobs (company) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS jobs_scraped_at_idx ON jobs (scraped_at DESC)`,
		`CREATE TABLE IF NOT EXISTS ingest_runs (
			id             UUID PRIMARY KEY,
			started_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finished_at    TIMESTAMPTZ,
			success        BOOLEAN NOT NULL DEFAULT FALSE,
			jobs_ingested  INTEGER NOT NULL DEFAULT 0,
			jobs_updated   INTEGER NOT NULL DEFAULT 0,
			error_message  TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

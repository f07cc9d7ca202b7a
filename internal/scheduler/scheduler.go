// Package scheduler wires up the cron job that periodically triggers
// ingestion. Overlap suppression lives in the ingest Runner's lock, not in
// cron timing.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/NidaKhaan/job-market-intelligence/internal/ingest"
)

// Scheduler wraps robfig/cron and manages the ingestion loop.
type Scheduler struct {
	cron   *cron.Cron
	runner *ingest.Runner
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner *ingest.Runner, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		runner: runner,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingestion
// immediately so the database is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runIngest(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runIngest(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runIngest(ctx context.Context) {
	run, err := s.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, ingest.ErrRunInProgress) {
			log.Println("[scheduler] previous ingestion still running — skipping this tick")
			return
		}
		log.Printf("[scheduler] ingestion error: %v", err)
		return
	}
	log.Printf("[scheduler] ingestion run %s finished — ingested=%d updated=%d",
		run.ID, run.JobsIngested, run.JobsUpdated)
}

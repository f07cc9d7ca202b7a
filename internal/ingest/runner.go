package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
	"github.com/NidaKhaan/job-market-intelligence/internal/skills"
	"github.com/NidaKhaan/job-market-intelligence/internal/store"
)

// ErrRunInProgress is returned when an ingestion cycle is triggered while
// another one is still running. The caller logs and skips; runs never queue.
var ErrRunInProgress = errors.New("ingestion run already in progress")

const (
	ingestLockKey = "jobmarket:ingest:lock"
	ingestLockTTL = 30 * time.Minute
)

// Runner executes one full ingestion cycle: fetch from every source, upsert,
// annotate, log the run.
//
// At most one cycle is active at a time. A local mutex guards in-process
// triggers; a Redis SETNX lease with a TTL guards concurrent replicas. The
// lease expires on its own if a crashed run never releases it.
type Runner struct {
	db        *store.Store
	rdb       *redis.Client
	extractor *skills.Extractor
	sources   []Source

	mu sync.Mutex
}

// NewRunner constructs a Runner over the given sources.
func NewRunner(db *store.Store, rdb *redis.Client, extractor *skills.Extractor, sources ...Source) *Runner {
	return &Runner{db: db, rdb: rdb, extractor: extractor, sources: sources}
}

// Run executes one ingestion cycle and records it in ingest_runs.
// Returns ErrRunInProgress when another cycle holds the lock.
func (r *Runner) Run(ctx context.Context) (*model.IngestRun, error) {
	if !r.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer r.mu.Unlock()

	run := model.IngestRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	acquired, err := r.rdb.SetNX(ctx, ingestLockKey, run.ID, ingestLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !acquired {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := r.rdb.Del(context.WithoutCancel(ctx), ingestLockKey).Err(); err != nil {
			slog.Warn("release ingest lock failed", "err", err)
		}
	}()

	log.Printf("[ingest] run %s started — %d source(s)", run.ID, len(r.sources))

	var sourceErrs []string
	for _, src := range r.sources {
		created, updated, err := r.ingestSource(ctx, src)
		if err != nil {
			log.Printf("[ingest] source %s failed: %v — continuing", src.Name(), err)
			sourceErrs = append(sourceErrs, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		run.JobsIngested += created
		run.JobsUpdated += updated
		log.Printf("[ingest] source %s done — created=%d updated=%d", src.Name(), created, updated)
	}

	if err := r.annotate(ctx); err != nil {
		log.Printf("[ingest] annotation pass failed: %v", err)
		sourceErrs = append(sourceErrs, fmt.Sprintf("annotate: %v", err))
	}

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Success = len(sourceErrs) == 0
	run.Error = strings.Join(sourceErrs, "; ")

	if err := r.db.LogRun(ctx, run); err != nil {
		slog.Warn("record ingest run failed", "runId", run.ID, "err", err)
	}

	log.Printf("[ingest] run %s complete — ingested=%d updated=%d success=%v",
		run.ID, run.JobsIngested, run.JobsUpdated, run.Success)
	return &run, nil
}

// ingestSource fetches one source and upserts the results. Per-posting
// errors are logged and skipped.
func (r *Runner) ingestSource(ctx context.Context, src Source) (created, updated int, err error) {
	postings, err := src.Fetch(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch: %w", err)
	}

	for _, p := range postings {
		wasCreated, err := r.db.UpsertPosting(ctx, p)
		if err != nil {
			log.Printf("[ingest] upsert %s failed: %v", p.JobID, err)
			continue
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}

// annotate re-derives extracted_skills and experience_level for every
// active posting. Each posting updates in a single statement; per-posting
// errors are logged and skipped.
func (r *Runner) annotate(ctx context.Context) error {
	postings, err := r.db.ActivePostings(ctx)
	if err != nil {
		return err
	}

	annotated := 0
	for _, p := range postings {
		skillList := r.extractor.ExtractSkills(p.CombinedText())
		level := skills.ExtractExperienceLevel(p.Title)

		if err := r.db.UpdateInsights(ctx, p.JobID, skillList, level); err != nil {
			log.Printf("[ingest] annotate %s failed: %v", p.JobID, err)
			continue
		}
		annotated++
	}

	log.Printf("[ingest] annotated %d/%d active postings", annotated, len(postings))
	return nil
}

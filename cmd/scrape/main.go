// One-shot ingestion run over all configured sources. Useful for seeding a
// fresh database or re-running after a schema change without waiting for
// the scheduler.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/NidaKhaan/job-market-intelligence/internal/config"
	"github.com/NidaKhaan/job-market-intelligence/internal/db"
	"github.com/NidaKhaan/job-market-intelligence/internal/ingest"
	"github.com/NidaKhaan/job-market-intelligence/internal/skills"
	"github.com/NidaKhaan/job-market-intelligence/internal/store"
	"github.com/NidaKhaan/job-market-intelligence/internal/taxonomy"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[scrape] Config error: %v", err)
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[scrape] PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("[scrape] Migrate: %v", err)
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[scrape] Redis: %v", err)
	}
	defer rdb.Close()

	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyFile)
		if err != nil {
			log.Fatalf("[scrape] Taxonomy: %v", err)
		}
	}

	st := store.New(pool)
	runner := ingest.NewRunner(st, rdb, skills.NewExtractor(tax),
		ingest.NewRemoteOKSource(cfg.Sources.RemoteOKURL, cfg.Sources.MaxJobs),
		ingest.NewRemotiveSource(cfg.Sources.RemotiveURL, cfg.Sources.MaxJobs),
	)

	run, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("[scrape] Run failed: %v", err)
	}

	fmt.Printf("run %s finished\n", run.ID)
	fmt.Printf("  ingested: %d\n", run.JobsIngested)
	fmt.Printf("  updated:  %d\n", run.JobsUpdated)
	fmt.Printf("  success:  %v\n", run.Success)
	if run.Error != "" {
		fmt.Printf("  errors:   %s\n", run.Error)
	}
}

// job-market-intelligence server
//
// Aggregates remote-job postings from public APIs on a schedule, annotates
// them with extracted skills and experience levels, and serves postings,
// statistics, trends, duplicate candidates and opportunity rankings over a
// small REST API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/NidaKhaan/job-market-intelligence/internal/api"
	"github.com/NidaKhaan/job-market-intelligence/internal/config"
	"github.com/NidaKhaan/job-market-intelligence/internal/db"
	"github.com/NidaKhaan/job-market-intelligence/internal/dedup"
	"github.com/NidaKhaan/job-market-intelligence/internal/ingest"
	"github.com/NidaKhaan/job-market-intelligence/internal/scheduler"
	"github.com/NidaKhaan/job-market-intelligence/internal/scoring"
	"github.com/NidaKhaan/job-market-intelligence/internal/skills"
	"github.com/NidaKhaan/job-market-intelligence/internal/store"
	"github.com/NidaKhaan/job-market-intelligence/internal/taxonomy"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[server] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[server] PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("[server] Migrate: %v", err)
	}
	log.Println("[server] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[server] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[server] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[server] Redis connected ✓")

	// ── Core services ───────────────────────────────────────────────────────
	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyFile)
		if err != nil {
			log.Fatalf("[server] Taxonomy: %v", err)
		}
	}
	extractor := skills.NewExtractor(tax)

	st := store.New(pool)
	scorer := scoring.New(st, cfg.Scoring.Weights)
	detector := dedup.New(st, cfg.Dedup.SimilarityThreshold)

	runner := ingest.NewRunner(st, rdb, extractor,
		ingest.NewRemoteOKSource(cfg.Sources.RemoteOKURL, cfg.Sources.MaxJobs),
		ingest.NewRemotiveSource(cfg.Sources.RemotiveURL, cfg.Sources.MaxJobs),
	)

	// ── Scheduler ───────────────────────────────────────────────────────────
	sched := scheduler.New(runner, cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[server] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	h := api.NewHandler(st, rdb, scorer, detector, version)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("[server] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[server] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] Shutdown error: %v", err)
	}
	log.Println("[server] Stopped.")
}

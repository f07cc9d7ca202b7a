package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NidaKhaan/job-market-intelligence/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JOBMARKET_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobs")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("API_PORT", "")
	t.Setenv("SCRAPE_INTERVAL_HOURS", "")
	t.Setenv("TAXONOMY_FILE", "")
}

// ── Load ───────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ScrapeIntervalHours != 6 {
		t.Errorf("ScrapeIntervalHours = %d, want 6", cfg.ScrapeIntervalHours)
	}
	if cfg.Dedup.SimilarityThreshold != 0.85 {
		t.Errorf("SimilarityThreshold = %v, want 0.85", cfg.Dedup.SimilarityThreshold)
	}
	if cfg.Sources.MaxJobs != 50 {
		t.Errorf("MaxJobs = %d, want 50", cfg.Sources.MaxJobs)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := config.Load(); err == nil {
		t.Error("Load without DATABASE_URL expected error, got nil")
	}
}

func TestLoad_MissingRedisURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_URL", "")

	if _, err := config.Load(); err == nil {
		t.Error("Load without REDIS_URL expected error, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9999")
	t.Setenv("SCRAPE_INTERVAL_HOURS", "12")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.ScrapeIntervalHours != 12 {
		t.Errorf("ScrapeIntervalHours = %d, want 12", cfg.ScrapeIntervalHours)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"3000\"\nsources:\n  maxJobs: 25\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBMARKET_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000 from file", cfg.Port)
	}
	if cfg.Sources.MaxJobs != 25 {
		t.Errorf("MaxJobs = %d, want 25 from file", cfg.Sources.MaxJobs)
	}
	// untouched keys keep their defaults
	if cfg.ScrapeIntervalHours != 6 {
		t.Errorf("ScrapeIntervalHours = %d, want default 6", cfg.ScrapeIntervalHours)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"3000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOBMARKET_CONFIG", path)
	t.Setenv("API_PORT", "4000")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want env override 4000", cfg.Port)
	}
}

// ── Weights.Validate ───────────────────────────────────────────────────────

func TestWeightsValidate_Defaults(t *testing.T) {
	if err := config.Default().Scoring.Weights.Validate(); err != nil {
		t.Errorf("default weights failed validation: %v", err)
	}
}

func TestWeightsValidate_BadSum(t *testing.T) {
	w := config.Weights{SkillMatch: 0.5, Salary: 0.5, Location: 0.5}
	if err := w.Validate(); err == nil {
		t.Error("weights summing to 1.5 expected error, got nil")
	}
}

func TestWeightsValidate_Negative(t *testing.T) {
	w := config.Weights{SkillMatch: 1.4, Salary: -0.4}
	if err := w.Validate(); err == nil {
		t.Error("negative weight expected error, got nil")
	}
}

func TestWeightsValidate_Zero(t *testing.T) {
	if err := (config.Weights{}).Validate(); err == nil {
		t.Error("all-zero weights expected error, got nil")
	}
}

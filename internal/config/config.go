// Package config loads runtime configuration from environment variables and
// an optional YAML file. Fail-fast: if a required variable is missing, the
// process exits at startup.
//
// The YAML file (path in JOBMARKET_CONFIG) carries the tunables — scoring
// weights, thresholds, source endpoints — so they can change without a code
// change. Environment variables win over the file for connection settings.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "JOBMARKET_CONFIG"
	databaseURLEnv    = "DATABASE_URL"
	redisURLEnv       = "REDIS_URL"
	portEnv           = "API_PORT"
	scrapeIntervalEnv = "SCRAPE_INTERVAL_HOURS"
	taxonomyPathEnv   = "TAXONOMY_FILE"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port                string  `yaml:"port"`
	DatabaseURL         string  `yaml:"databaseUrl"`
	RedisURL            string  `yaml:"redisUrl"`
	ScrapeIntervalHours int     `yaml:"scrapeIntervalHours"`
	TaxonomyFile        string  `yaml:"taxonomyFile"`
	Sources             Sources `yaml:"sources"`
	Scoring             Scoring `yaml:"scoring"`
	Dedup               Dedup   `yaml:"dedup"`
}

// Sources holds per-source fetch settings.
type Sources struct {
	RemoteOKURL string `yaml:"remoteokUrl"`
	RemotiveURL string `yaml:"remotiveUrl"`
	MaxJobs     int    `yaml:"maxJobs"` // cap per source per cycle
}

// Scoring exposes the weighted-sum policy as named configuration.
type Scoring struct {
	Weights Weights `yaml:"weights"`
}

// Weights are the composite-score component weights. Validate rejects sets
// that do not sum to 1.
type Weights struct {
	SkillMatch    float64 `yaml:"skillMatch"`
	Salary        float64 `yaml:"salary"`
	Location      float64 `yaml:"location"`
	Experience    float64 `yaml:"experience"`
	CompanyGrowth float64 `yaml:"companyGrowth"`
}

// Dedup holds duplicate-detection settings.
type Dedup struct {
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
}

// Load reads the optional YAML file, applies environment overrides and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s is required", databaseURLEnv)
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("%s is required", redisURLEnv)
	}
	if cfg.ScrapeIntervalHours < 1 {
		return nil, fmt.Errorf("scrape interval must be a positive number of hours, got %d", cfg.ScrapeIntervalHours)
	}
	if err := cfg.Scoring.Weights.Validate(); err != nil {
		return nil, err
	}
	if t := cfg.Dedup.SimilarityThreshold; t <= 0 || t > 1 {
		return nil, fmt.Errorf("similarity threshold must be in (0,1], got %v", t)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseURLEnv); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(redisURLEnv); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(portEnv); v != "" {
		c.Port = v
	}
	if v := os.Getenv(taxonomyPathEnv); v != "" {
		c.TaxonomyFile = v
	}
	if s := os.Getenv(scrapeIntervalEnv); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			c.ScrapeIntervalHours = v
		}
	}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	for _, v := range []float64{w.SkillMatch, w.Salary, w.Location, w.Experience, w.CompanyGrowth} {
		if v < 0 {
			return fmt.Errorf("scoring weights must be non-negative")
		}
	}
	sum := w.SkillMatch + w.Salary + w.Location + w.Experience + w.CompanyGrowth
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %v", sum)
	}
	return nil
}

// Default returns the built-in configuration. The scoring weights and the
// 0.85 similarity threshold match the original tuning.
func Default() *Config {
	return &Config{
		Port:                "8080",
		ScrapeIntervalHours: 6,
		Sources: Sources{
			RemoteOKURL: "https://remoteok.com/api",
			RemotiveURL: "https://remotive.com/api/remote-jobs",
			MaxJobs:     50,
		},
		Scoring: Scoring{
			Weights: Weights{
				SkillMatch:    0.40,
				Salary:        0.25,
				Location:      0.15,
				Experience:    0.10,
				CompanyGrowth: 0.10,
			},
		},
		Dedup: Dedup{SimilarityThreshold: 0.85},
	}
}

// Package api implements the read-side HTTP handlers.
//
// Routes:
//
//	GET  /                               → endpoint index
//	GET  /health                         → liveness
//	GET  /api/jobs?limit&offset          → active postings, newest first
//	GET  /api/jobs/{job_id}              → one posting
//	POST /api/jobs/{job_id}/deactivate   → soft-delete (duplicate review)
//	POST /api/jobs/{job_id}/score        → score one posting for a profile
//	GET  /api/stats                      → aggregate rollup (cached)
//	GET  /api/recent?hours               → postings from the last N hours
//	GET  /api/search?q&location&company  → filtered search
//	GET  /api/runs?limit                 → ingestion run log
//	GET  /api/trends?days                → skill growth and frequency
//	GET  /api/duplicates?threshold       → duplicate candidate pairs
//	POST /api/rank                       → rank postings for a profile
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NidaKhaan/job-market-intelligence/internal/dedup"
	"github.com/NidaKhaan/job-market-intelligence/internal/model"
	"github.com/NidaKhaan/job-market-intelligence/internal/report"
	"github.com/NidaKhaan/job-market-intelligence/internal/scoring"
	"github.com/NidaKhaan/job-market-intelligence/internal/store"
)

const (
	statsCacheKey = "jobmarket:stats:cache"
	statsCacheTTL = 60 * time.Second

	defaultJobsLimit   = 100
	defaultRecentHours = 24
)

// Handler holds shared dependencies.
type Handler struct {
	db       *store.Store
	rdb      *redis.Client
	scorer   *scoring.Scorer
	detector *dedup.Detector
	version  string
}

// NewHandler returns a configured Handler.
func NewHandler(db *store.Store, rdb *redis.Client, scorer *scoring.Scorer, detector *dedup.Detector, version string) *Handler {
	return &Handler{db: db, rdb: rdb, scorer: scorer, detector: detector, version: version}
}

// RegisterRoutes mounts all routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.home)
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/api/jobs", h.listJobs)
	mux.HandleFunc("/api/jobs/", h.handleJobAction)
	mux.HandleFunc("/api/stats", h.stats)
	mux.HandleFunc("/api/recent", h.recent)
	mux.HandleFunc("/api/search", h.search)
	mux.HandleFunc("/api/runs", h.runs)
	mux.HandleFunc("/api/trends", h.trends)
	mux.HandleFunc("/api/duplicates", h.duplicates)
	mux.HandleFunc("/api/rank", h.rank)
}

// ─── Handlers ────────────────────────────────────────────────────────────────

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		jsonError(w, "not found", http.StatusNotFound)
		return
	}
	jsonOK(w, map[string]any{
		"message": "Job Market Intelligence API",
		"version": h.version,
		"endpoints": map[string]string{
			"/api/jobs":       "Get active jobs (params: limit, offset)",
			"/api/jobs/{id}":  "Get a specific job",
			"/api/stats":      "Get aggregate statistics",
			"/api/recent":     "Get recent jobs (param: hours)",
			"/api/search":     "Search jobs (params: q, location, company)",
			"/api/runs":       "Get ingestion run log",
			"/api/trends":     "Get skill trends (param: days)",
			"/api/duplicates": "Get duplicate candidate pairs",
			"/api/rank":       "POST a skill profile to rank all jobs",
		},
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "job-market-intelligence",
		"version": h.version,
	})
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := queryInt(r, "limit", defaultJobsLimit)
	offset := queryInt(r, "offset", 0)

	postings, err := h.db.GetPostings(r.Context(), store.Filter{
		ActiveOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		log.Printf("[api] listJobs error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"count": len(postings), "jobs": postings})
}

// handleJobAction handles GET /api/jobs/{id} and POST /api/jobs/{id}/deactivate.
func (h *Handler) handleJobAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// parts: ["api", "jobs", id] or ["api", "jobs", id, action]
	switch {
	case len(parts) == 3 && r.Method == http.MethodGet:
		h.getJob(w, r, parts[2])
	case len(parts) == 4 && parts[3] == "deactivate" && r.Method == http.MethodPost:
		h.deactivateJob(w, r, parts[2])
	case len(parts) == 4 && parts[3] == "score" && r.Method == http.MethodPost:
		h.scoreJob(w, r, parts[2])
	default:
		jsonError(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) scoreJob(w http.ResponseWriter, r *http.Request, jobID string) {
	var body struct {
		Skills      []string          `json:"skills"`
		Preferences model.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := h.scorer.Score(r.Context(), jobID, body.Skills, body.Preferences)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, fmt.Sprintf("job %q not found", jobID), http.StatusNotFound)
			return
		}
		log.Printf("[api] score error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, result)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request, jobID string) {
	posting, err := h.db.GetPosting(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, fmt.Sprintf("job %q not found", jobID), http.StatusNotFound)
			return
		}
		log.Printf("[api] getJob error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, posting)
}

func (h *Handler) deactivateJob(w http.ResponseWriter, r *http.Request, jobID string) {
	if err := h.detector.MarkDuplicate(r.Context(), jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, fmt.Sprintf("job %q not found", jobID), http.StatusNotFound)
			return
		}
		log.Printf("[api] deactivate error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"jobId": jobID, "isActive": false})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Serve the cached rollup when fresh; the aggregate query set is the
	// most expensive read we have.
	if cached, err := h.rdb.Get(r.Context(), statsCacheKey).Bytes(); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	stats, err := h.db.Stats(r.Context())
	if err != nil {
		log.Printf("[api] stats error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := h.rdb.Set(r.Context(), statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
			slog.Warn("stats cache write failed", "err", err)
		}
	}
	jsonOK(w, stats)
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hours := queryInt(r, "hours", defaultRecentHours)
	postings, err := h.db.RecentPostings(r.Context(), hours)
	if err != nil {
		log.Printf("[api] recent error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"count": len(postings), "hours": hours, "jobs": postings})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := store.SearchParams{
		Query:    r.URL.Query().Get("q"),
		Location: r.URL.Query().Get("location"),
		Company:  r.URL.Query().Get("company"),
	}
	postings, err := h.db.Search(r.Context(), params)
	if err != nil {
		log.Printf("[api] search error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{
		"count":        len(postings),
		"searchParams": params,
		"jobs":         postings,
	})
}

func (h *Handler) runs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := queryInt(r, "limit", 20)
	runs, err := h.db.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Printf("[api] runs error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"count": len(runs), "runs": runs})
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := queryInt(r, "days", 30)
	since := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	postings, err := h.db.GetPostings(r.Context(), store.Filter{ActiveOnly: true, ScrapedSince: &since})
	if err != nil {
		log.Printf("[api] trends error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	growth := report.SkillGrowth(postings)
	jsonOK(w, map[string]any{
		"days":         days,
		"postings":     len(postings),
		"growth":       growth,
		"trendingUp":   report.TrendingUp(growth, 10),
		"trendingDown": report.TrendingDown(growth),
		"frequency":    report.SkillFrequency(postings),
		"experience":   report.ExperienceDistribution(postings),
	})
}

func (h *Handler) duplicates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		pairs []dedup.Pair
		err   error
	)
	if s := r.URL.Query().Get("threshold"); s != "" {
		t, perr := strconv.ParseFloat(s, 64)
		if perr != nil || t <= 0 || t > 1 {
			jsonError(w, "threshold must be a number in (0,1]", http.StatusBadRequest)
			return
		}
		var postings []model.JobPosting
		postings, err = h.db.ActivePostings(r.Context())
		if err == nil {
			pairs = dedup.DetectPairs(postings, t)
		}
	} else {
		pairs, err = h.detector.FindDuplicates(r.Context())
	}
	if err != nil {
		log.Printf("[api] duplicates error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"count": len(pairs), "duplicates": pairs})
}

func (h *Handler) rank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Skills      []string          `json:"skills"`
		Preferences model.Preferences `json:"preferences"`
		Limit       int               `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(body.Skills) == 0 {
		jsonError(w, "body must contain a non-empty skills list", http.StatusBadRequest)
		return
	}

	results, err := h.scorer.Rank(r.Context(), body.Skills, body.Preferences, body.Limit)
	if err != nil {
		log.Printf("[api] rank error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, map[string]any{"count": len(results), "results": results})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

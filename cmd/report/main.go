// Ad-hoc reporting over the stored postings.
//
// Usage:
//
//	report -kind stats       database totals, sources, locations, salaries
//	report -kind trends      skill growth against the median scrape time
//	report -kind validation  data-quality checks
//	report -kind duplicates  pairwise duplicate scan over the active set
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/NidaKhaan/job-market-intelligence/internal/config"
	"github.com/NidaKhaan/job-market-intelligence/internal/db"
	"github.com/NidaKhaan/job-market-intelligence/internal/dedup"
	"github.com/NidaKhaan/job-market-intelligence/internal/report"
	"github.com/NidaKhaan/job-market-intelligence/internal/store"
)

func main() {
	kind := flag.String("kind", "stats", "report to run: stats, trends, validation, duplicates")
	threshold := flag.Float64("threshold", dedup.DefaultThreshold, "similarity threshold for -kind duplicates")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[report] Config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[report] PostgreSQL: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)

	switch *kind {
	case "stats":
		printStats(ctx, st)
	case "trends":
		printTrends(ctx, st)
	case "validation":
		printValidation(ctx, st)
	case "duplicates":
		printDuplicates(ctx, st, *threshold)
	default:
		fmt.Fprintf(os.Stderr, "unknown report kind %q\n", *kind)
		os.Exit(2)
	}
}

func printStats(ctx context.Context, st *store.Store) {
	stats, err := st.Stats(ctx)
	if err != nil {
		log.Fatalf("[report] stats: %v", err)
	}

	fmt.Println("JOB MARKET DATABASE STATISTICS")
	fmt.Printf("total active jobs: %d (24h: %d, 7d: %d, companies: %d)\n",
		stats.TotalJobs, stats.JobsLast24h, stats.JobsLast7d, stats.UniqueCompanies)

	fmt.Println("\nby source:")
	for src, n := range stats.BySource {
		fmt.Printf("  %-12s %d\n", src, n)
	}

	fmt.Println("\ntop locations:")
	for _, lc := range stats.TopLocations {
		line := fmt.Sprintf("  %-30s %d jobs", lc.Location, lc.Count)
		if lc.AvgSalMin != nil && lc.AvgSalMax != nil {
			line += fmt.Sprintf("  avg $%.0f-$%.0f", *lc.AvgSalMin, *lc.AvgSalMax)
		}
		fmt.Println(line)
	}

	fmt.Println("\ntop companies:")
	for _, cc := range stats.TopCompanies {
		fmt.Printf("  %-30s %d jobs\n", cc.Company, cc.Count)
	}

	if stats.Salary.AverageMin != nil {
		fmt.Printf("\nsalary: avg $%.0f-$%.0f across %d disclosed\n",
			*stats.Salary.AverageMin, *stats.Salary.AverageMax, stats.Salary.JobsWithSalary)
	}
}

func printTrends(ctx context.Context, st *store.Store) {
	postings, err := st.ActivePostings(ctx)
	if err != nil {
		log.Fatalf("[report] trends: %v", err)
	}

	growth := report.SkillGrowth(postings)
	fmt.Printf("SKILL TRENDS — %d active postings\n", len(postings))

	fmt.Println("\ntrending up:")
	for _, t := range report.TrendingUp(growth, 10) {
		fmt.Printf("  %-20s %+6.1f%% (%d → %d)\n", t.Skill, t.GrowthRate, t.OlderCount, t.RecentCount)
	}

	fmt.Println("\ntrending down:")
	for _, t := range report.TrendingDown(growth) {
		fmt.Printf("  %-20s %+6.1f%% (%d → %d)\n", t.Skill, t.GrowthRate, t.OlderCount, t.RecentCount)
	}

	fmt.Println("\nconsistently in demand:")
	for _, t := range report.Stable(growth) {
		fmt.Printf("  %-20s %d mentions\n", t.Skill, t.TotalMentions)
	}

	fmt.Println("\nexperience distribution:")
	for level, n := range report.ExperienceDistribution(postings) {
		fmt.Printf("  %-15s %d\n", level, n)
	}
}

func printValidation(ctx context.Context, st *store.Store) {
	postings, err := st.ActivePostings(ctx)
	if err != nil {
		log.Fatalf("[report] validation: %v", err)
	}

	rep := report.Validate(postings)
	fmt.Printf("DATA VALIDATION REPORT — %d active postings\n", rep.TotalPostings)

	fmt.Println("\nfield completeness:")
	for _, gap := range rep.FieldGaps {
		fmt.Printf("  %-15s %d missing (%.1f%%)\n", gap.Field, gap.Missing, gap.MissingPct)
	}

	fmt.Printf("\ninvalid salary ranges: %d\n", rep.InvalidSalaryRanges)
	fmt.Printf("salary outliers:       %d\n", rep.SalaryOutliers)
	fmt.Printf("malformed urls:        %d\n", rep.InvalidURLs)
	fmt.Printf("short descriptions:    %d\n", rep.ShortDescriptions)
	fmt.Printf("long requirements:     %d\n", rep.LongRequirements)

	if len(rep.Issues) == 0 {
		fmt.Println("\nno issues found")
		return
	}
	fmt.Println("\nissues:")
	for _, issue := range rep.Issues {
		fmt.Printf("  - %s\n", issue)
	}
}

func printDuplicates(ctx context.Context, st *store.Store, threshold float64) {
	postings, err := st.ActivePostings(ctx)
	if err != nil {
		log.Fatalf("[report] duplicates: %v", err)
	}

	pairs := dedup.DetectPairs(postings, threshold)
	fmt.Printf("DUPLICATE SCAN — %d active postings, %d candidate pair(s)\n", len(postings), len(pairs))

	for _, p := range pairs {
		fmt.Printf("\n  %s ↔ %s (%.2f, %s)\n", p.Job1ID, p.Job2ID, p.Similarity, p.Reason)
		if p.Reason == dedup.ReasonSimilarTitle {
			fmt.Printf("    %q / %q at %s\n", p.Title1, p.Title2, p.Company)
		}
	}
}

package store

import (
	"context"
	"fmt"
	"time"
)

// Stats is the aggregate snapshot served by /api/stats.
type Stats struct {
	TotalJobs       int             `json:"totalJobs"`
	BySource        map[string]int  `json:"bySource"`
	TopLocations    []LocationCount `json:"topLocations"`
	TopCompanies    []CompanyCount  `json:"topCompanies"`
	Salary          SalaryStats     `json:"salaryStats"`
	JobsLast24h     int             `json:"jobsLast24h"`
	JobsLast7d      int             `json:"jobsLast7d"`
	UniqueCompanies int             `json:"uniqueCompanies"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// LocationCount is one row of the location rollup.
type LocationCount struct {
	Location  string   `json:"location"`
	Count     int      `json:"count"`
	AvgSalMin *float64 `json:"avgSalaryMin"`
	AvgSalMax *float64 `json:"avgSalaryMax"`
}

// CompanyCount is one row of the company rollup.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// SalaryStats summarizes the postings that disclose a salary.
type SalaryStats struct {
	AverageMin     *float64 `json:"averageMin"`
	AverageMax     *float64 `json:"averageMax"`
	JobsWithSalary int      `json:"jobsWithSalary"`
}

// Stats computes the aggregate snapshot over active postings.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	out := &Stats{
		BySource:     map[string]int{},
		TopLocations: []LocationCount{},
		TopCompanies: []CompanyCount{},
		GeneratedAt:  time.Now().UTC(),
	}

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE scraped_at >= NOW() - INTERVAL '24 hours'),
		        COUNT(*) FILTER (WHERE scraped_at >= NOW() - INTERVAL '7 days'),
		        COUNT(DISTINCT company)
		 FROM jobs WHERE is_active = TRUE`,
	).Scan(&out.TotalJobs, &out.JobsLast24h, &out.JobsLast7d, &out.UniqueCompanies)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM jobs WHERE is_active = TRUE GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("stats by source: %w", err)
	}
	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("stats source scan: %w", err)
		}
		out.BySource[src] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT location, COUNT(*) AS cnt, AVG(salary_min), AVG(salary_max)
		 FROM jobs WHERE is_active = TRUE
		 GROUP BY location ORDER BY cnt DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("stats locations: %w", err)
	}
	for rows.Next() {
		var lc LocationCount
		if err := rows.Scan(&lc.Location, &lc.Count, &lc.AvgSalMin, &lc.AvgSalMax); err != nil {
			rows.Close()
			return nil, fmt.Errorf("stats location scan: %w", err)
		}
		out.TopLocations = append(out.TopLocations, lc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT company, COUNT(*) AS cnt
		 FROM jobs WHERE is_active = TRUE
		 GROUP BY company HAVING COUNT(*) >= 2
		 ORDER BY cnt DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("stats companies: %w", err)
	}
	for rows.Next() {
		var cc CompanyCount
		if err := rows.Scan(&cc.Company, &cc.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("stats company scan: %w", err)
		}
		out.TopCompanies = append(out.TopCompanies, cc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx,
		`SELECT AVG(salary_min), AVG(salary_max), COUNT(*)
		 FROM jobs WHERE is_active = TRUE AND salary_min IS NOT NULL`,
	).Scan(&out.Salary.AverageMin, &out.Salary.AverageMax, &out.Salary.JobsWithSalary)
	if err != nil {
		return nil, fmt.Errorf("stats salary: %w", err)
	}

	return out, nil
}

// Package report derives read-side analytics from posting snapshots. All
// functions are stateless: they take a slice of postings and return derived
// values, persisting nothing.
package report

import (
	"sort"
	"time"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// SkillTrend compares a skill's mentions before and after the snapshot's
// median scrape time.
type SkillTrend struct {
	Skill         string  `json:"skill"`
	RecentCount   int     `json:"recentCount"`
	OlderCount    int     `json:"olderCount"`
	GrowthRate    float64 `json:"growthRate"` // percent
	TotalMentions int     `json:"totalMentions"`
}

// SkillGrowth splits the postings at the median scraped_at and computes a
// per-skill growth rate: (recent-older)/older*100, 100 when a skill is new
// (older == 0, recent > 0), 0 otherwise. Results are sorted by growth rate
// descending, ties alphabetically.
func SkillGrowth(postings []model.JobPosting) []SkillTrend {
	if len(postings) == 0 {
		return []SkillTrend{}
	}

	mid := medianTime(postings)

	recentFreq := make(map[string]int)
	olderFreq := make(map[string]int)
	for _, p := range postings {
		freq := olderFreq
		if !p.ScrapedAt.Before(mid) {
			freq = recentFreq
		}
		for _, s := range p.ExtractedSkills {
			freq[s]++
		}
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(recentFreq)+len(olderFreq))
	for s := range recentFreq {
		if !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	for s := range olderFreq {
		if !seen[s] {
			seen[s] = true
			names = append(names, s)
		}
	}
	sort.Strings(names)

	trends := make([]SkillTrend, 0, len(names))
	for _, skill := range names {
		recent := recentFreq[skill]
		older := olderFreq[skill]
		trends = append(trends, SkillTrend{
			Skill:         skill,
			RecentCount:   recent,
			OlderCount:    older,
			GrowthRate:    growthRate(recent, older),
			TotalMentions: recent + older,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].GrowthRate > trends[j].GrowthRate
	})
	return trends
}

func growthRate(recent, older int) float64 {
	if older > 0 {
		return float64(recent-older) / float64(older) * 100
	}
	if recent > 0 {
		return 100
	}
	return 0
}

// medianTime returns the median scraped_at of the snapshot. For an even
// count it is the midpoint of the two middle values.
func medianTime(postings []model.JobPosting) time.Time {
	times := make([]time.Time, len(postings))
	for i, p := range postings {
		times[i] = p.ScrapedAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	n := len(times)
	if n%2 == 1 {
		return times[n/2]
	}
	lo, hi := times[n/2-1], times[n/2]
	return lo.Add(hi.Sub(lo) / 2)
}

// TrendingUp returns the fastest-growing skills with at least two total
// mentions (single mentions are noise), capped at limit.
func TrendingUp(trends []SkillTrend, limit int) []SkillTrend {
	out := make([]SkillTrend, 0, limit)
	for _, t := range trends {
		if t.TotalMentions >= 2 && t.GrowthRate > 0 {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

// TrendingDown returns skills declining by more than 20% with at least two
// total mentions.
func TrendingDown(trends []SkillTrend) []SkillTrend {
	out := make([]SkillTrend, 0)
	for _, t := range trends {
		if t.GrowthRate < -20 && t.TotalMentions >= 2 {
			out = append(out, t)
		}
	}
	return out
}

// Stable returns consistently demanded skills: growth within ±20% and at
// least five total mentions, sorted by mentions descending.
func Stable(trends []SkillTrend) []SkillTrend {
	out := make([]SkillTrend, 0)
	for _, t := range trends {
		if t.GrowthRate > -20 && t.GrowthRate < 20 && t.TotalMentions >= 5 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMentions > out[j].TotalMentions
	})
	return out
}

// SkillCount is one row of the frequency rollup.
type SkillCount struct {
	Skill   string  `json:"skill"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // of postings mentioning the skill
}

// SkillFrequency counts skill mentions across the snapshot, sorted by count
// descending, ties alphabetically.
func SkillFrequency(postings []model.JobPosting) []SkillCount {
	freq := make(map[string]int)
	for _, p := range postings {
		for _, s := range p.ExtractedSkills {
			freq[s]++
		}
	}

	names := make([]string, 0, len(freq))
	for s := range freq {
		names = append(names, s)
	}
	sort.Strings(names)

	out := make([]SkillCount, 0, len(names))
	for _, s := range names {
		pct := 0.0
		if len(postings) > 0 {
			pct = float64(freq[s]) / float64(len(postings)) * 100
		}
		out = append(out, SkillCount{Skill: s, Count: freq[s], Percent: pct})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ExperienceDistribution counts postings per experience tier. Postings
// without an annotation count as "Not specified".
func ExperienceDistribution(postings []model.JobPosting) map[string]int {
	dist := make(map[string]int)
	for _, p := range postings {
		level := p.ExperienceLevel
		if level == "" {
			level = model.ExperienceNotSpecified
		}
		dist[level]++
	}
	return dist
}

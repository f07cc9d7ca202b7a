// Package scoring ranks job postings against a user profile.
//
// Five component scores (skill match, salary, location, experience level,
// company hiring velocity), each in [0,100], combine into a weighted total.
// Degraded input never errors: missing data resolves to documented neutral
// values. It is transport-agnostic — used by the HTTP layer and the report
// CLI alike.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/NidaKhaan/job-market-intelligence/internal/config"
	"github.com/NidaKhaan/job-market-intelligence/internal/model"
)

// PostingStore is the slice of storage the scorer needs.
type PostingStore interface {
	GetPosting(ctx context.Context, jobID string) (*model.JobPosting, error)
	ActivePostings(ctx context.Context) ([]model.JobPosting, error)
	CountActiveByCompany(ctx context.Context, company string) (int, error)
}

// Recommendation tiers by total score.
const (
	TierHighlyRecommended = "highly recommended"
	TierGoodFit           = "good fit"
	TierConsider          = "consider"
	TierNotIdeal          = "not ideal"
)

// Breakdown carries the five component scores.
type Breakdown struct {
	SkillMatch    float64 `json:"skillMatch"`
	Salary        float64 `json:"salary"`
	Location      float64 `json:"location"`
	Experience    float64 `json:"experience"`
	CompanyGrowth float64 `json:"companyGrowth"`
}

// ScoreResult is the derived, non-persisted fit between one posting and a
// user profile. Recomputed on demand.
type ScoreResult struct {
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	SalaryRange    string    `json:"salaryRange"`
	TotalScore     float64   `json:"totalScore"`
	Breakdown      Breakdown `json:"breakdown"`
	MatchingSkills []string  `json:"matchingSkills"`
	MissingSkills  []string  `json:"missingSkills"`
	URL            string    `json:"url"`
	Recommendation string    `json:"recommendation"`
}

// Scorer scores and ranks postings. Weights come from configuration so the
// policy can be tuned without a code change.
type Scorer struct {
	db      PostingStore
	weights config.Weights
}

// New returns a Scorer with the given weight set.
func New(db PostingStore, weights config.Weights) *Scorer {
	return &Scorer{db: db, weights: weights}
}

// Score computes the fit of one posting. Unknown ids surface the store's
// not-found error; any other degraded input degrades to a neutral component.
func (s *Scorer) Score(ctx context.Context, jobID string, userSkills []string, prefs model.Preferences) (*ScoreResult, error) {
	posting, err := s.db.GetPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.scorePosting(ctx, *posting, userSkills, prefs.WithDefaults())
}

// Rank scores every active posting and returns the results sorted
// descending by total score. The sort is stable: equal scores keep their
// retrieval order. limit <= 0 returns everything.
func (s *Scorer) Rank(ctx context.Context, userSkills []string, prefs model.Preferences, limit int) ([]ScoreResult, error) {
	postings, err := s.db.ActivePostings(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	prefs = prefs.WithDefaults()

	results := make([]ScoreResult, 0, len(postings))
	for _, p := range postings {
		r, err := s.scorePosting(ctx, p, userSkills, prefs)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Scorer) scorePosting(ctx context.Context, p model.JobPosting, userSkills []string, prefs model.Preferences) (*ScoreResult, error) {
	companyCount, err := s.db.CountActiveByCompany(ctx, p.Company)
	if err != nil {
		return nil, fmt.Errorf("company count: %w", err)
	}

	matching, missing := SplitSkills(userSkills, p.ExtractedSkills)

	breakdown := Breakdown{
		SkillMatch:    SkillMatchScore(userSkills, p.ExtractedSkills),
		Salary:        SalaryScore(p.SalaryMin, p.SalaryMax, prefs.MinSalary),
		Location:      LocationScore(p.Location, prefs.PreferredLocation),
		Experience:    ExperienceScore(p.ExperienceLevel, prefs.ExperienceLevel),
		CompanyGrowth: CompanyScore(companyCount),
	}

	total := breakdown.SkillMatch*s.weights.SkillMatch +
		breakdown.Salary*s.weights.Salary +
		breakdown.Location*s.weights.Location +
		breakdown.Experience*s.weights.Experience +
		breakdown.CompanyGrowth*s.weights.CompanyGrowth
	total = round1(total)

	return &ScoreResult{
		JobID:          p.JobID,
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		SalaryRange:    FormatSalaryRange(p.SalaryMin, p.SalaryMax),
		TotalScore:     total,
		Breakdown:      breakdown,
		MatchingSkills: matching,
		MissingSkills:  missing,
		URL:            p.URL,
		Recommendation: Recommendation(total),
	}, nil
}

// ─── Component scores ─────────────────────────────────────────────────────────

// SkillMatchScore returns matching/required*100 with a flat +10 bonus
// (capped at 100) when the user covers every listed skill. Postings with no
// listed skills score a neutral 50. Comparison is case-insensitive.
func SkillMatchScore(userSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 50
	}

	have := lowerSet(userSkills)
	matching := 0
	for _, skill := range jobSkills {
		if have[strings.ToLower(skill)] {
			matching++
		}
	}

	pct := float64(matching) / float64(len(jobSkills)) * 100
	if matching >= len(jobSkills) {
		pct = math.Min(100, pct+10)
	}
	return round1(pct)
}

// SalaryScore compares the posting's salary midpoint against the desired
// minimum. Either bound missing scores a neutral 50.
func SalaryScore(salaryMin, salaryMax *float64, minDesired float64) float64 {
	if salaryMin == nil || salaryMax == nil {
		return 50
	}
	avg := (*salaryMin + *salaryMax) / 2

	switch {
	case avg >= minDesired*1.5:
		return 100
	case avg >= minDesired*1.2:
		return 85
	case avg >= minDesired:
		return 70
	case avg >= minDesired*0.8:
		return 50
	default:
		return 30
	}
}

// LocationScore matches the posting location against the preferred one.
// Remote-to-remote is a perfect match; a remote posting is still flexible
// for a location-bound preference.
func LocationScore(jobLocation, preferredLocation string) float64 {
	if jobLocation == "" {
		return 50
	}
	jobLoc := strings.ToLower(jobLocation)
	prefLoc := strings.ToLower(preferredLocation)

	jobRemote := strings.Contains(jobLoc, "remote")
	prefRemote := strings.Contains(prefLoc, "remote")

	switch {
	case jobRemote && prefRemote:
		return 100
	case prefLoc != "" && (strings.Contains(jobLoc, prefLoc) || strings.Contains(prefLoc, jobLoc)):
		return 90
	case jobRemote:
		return 80
	default:
		return 40
	}
}

// experienceOrdinals maps the recognized tiers for distance comparison.
var experienceOrdinals = map[string]int{
	model.ExperienceJunior:   0,
	model.ExperienceMidLevel: 1,
	model.ExperienceSenior:   2,
}

// ExperienceScore compares tiers ordinally: equal 100, one apart 70, two
// apart 40. Unspecified or unrecognized levels score a flexible 70.
func ExperienceScore(jobLevel, userLevel string) float64 {
	if jobLevel == "" || jobLevel == model.ExperienceNotSpecified {
		return 70
	}
	jobIdx, okJob := experienceOrdinals[jobLevel]
	userIdx, okUser := experienceOrdinals[userLevel]
	if !okJob || !okUser {
		return 70
	}

	switch diff := abs(jobIdx - userIdx); diff {
	case 0:
		return 100
	case 1:
		return 70
	default:
		return 40
	}
}

// CompanyScore treats posting volume as a hiring-velocity proxy:
// more active postings from the same company, higher score.
func CompanyScore(activePostings int) float64 {
	switch {
	case activePostings >= 5:
		return 90
	case activePostings >= 3:
		return 75
	case activePostings >= 2:
		return 60
	default:
		return 50
	}
}

// Recommendation maps a total score to its tier.
func Recommendation(total float64) string {
	switch {
	case total >= 80:
		return TierHighlyRecommended
	case total >= 65:
		return TierGoodFit
	case total >= 50:
		return TierConsider
	default:
		return TierNotIdeal
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// SplitSkills partitions skills into what the user already has (in the
// user's order) and what the posting wants but the user lacks (in the
// posting's order).
func SplitSkills(userSkills, jobSkills []string) (matching, missing []string) {
	jobSet := lowerSet(jobSkills)
	have := lowerSet(userSkills)

	matching = make([]string, 0)
	for _, s := range userSkills {
		if jobSet[strings.ToLower(s)] {
			matching = append(matching, s)
		}
	}
	missing = make([]string, 0)
	for _, s := range jobSkills {
		if !have[strings.ToLower(s)] {
			missing = append(missing, s)
		}
	}
	return matching, missing
}

// FormatSalaryRange renders "$120,000 - $150,000", or "Not disclosed" when
// the lower bound is unknown.
func FormatSalaryRange(salaryMin, salaryMax *float64) string {
	if salaryMin == nil {
		return "Not disclosed"
	}
	hi := *salaryMin
	if salaryMax != nil {
		hi = *salaryMax
	}
	return fmt.Sprintf("$%s - $%s", formatThousands(*salaryMin), formatThousands(hi))
}

func formatThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

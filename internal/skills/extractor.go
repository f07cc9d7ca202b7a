// Package skills extracts structured insight — skill tokens, experience
// level, salary ranges — from free-text posting fields.
package skills

import (
	"regexp"
	"strings"

	"github.com/NidaKhaan/job-market-intelligence/internal/model"
	"github.com/NidaKhaan/job-market-intelligence/internal/taxonomy"
)

// Extractor matches text against a fixed skill catalog. Patterns are
// compiled once at construction; the extractor is read-only afterwards and
// safe for concurrent use.
type Extractor struct {
	tax      *taxonomy.Taxonomy
	patterns []tokenPattern // in vocabulary (sorted) order
}

type tokenPattern struct {
	token string
	re    *regexp.Regexp
}

// NewExtractor compiles one case-insensitive, word-boundary pattern per
// catalog token. Boundaries bracket the whole token so "go" never matches
// inside "google".
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	vocab := tax.Vocabulary()
	patterns := make([]tokenPattern, 0, len(vocab))
	for _, tok := range vocab {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(tok) + `\b`)
		patterns = append(patterns, tokenPattern{token: tok, re: re})
	}
	return &Extractor{tax: tax, patterns: patterns}
}

// Taxonomy returns the catalog this extractor was built from.
func (e *Extractor) Taxonomy() *taxonomy.Taxonomy { return e.tax }

// ExtractSkills returns the catalog tokens found in text, each reported
// once, in the catalog's sorted vocabulary order. Empty input yields an
// empty slice.
func (e *Extractor) ExtractSkills(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}
	for _, p := range e.patterns {
		if p.re.MatchString(text) {
			found = append(found, p.token)
		}
	}
	return found
}

// Categorize groups extracted skills by catalog category.
func (e *Extractor) Categorize(skillList []string) map[string][]string {
	return e.tax.Categorize(skillList)
}

// Word lists for experience tiers. Checked in order: a title matching
// several tiers resolves to the first.
var (
	seniorWords   = []string{"senior", "sr.", "lead", "principal", "staff", "architect"}
	juniorWords   = []string{"junior", "jr.", "entry", "graduate", "associate"}
	midLevelWords = []string{"mid-level", "intermediate", "mid level"}
)

// ExtractExperienceLevel derives the experience tier from a posting title.
// Precedence is Senior, then Junior, then Mid-Level; anything else is
// "Not specified".
func ExtractExperienceLevel(title string) string {
	if title == "" {
		return model.ExperienceNotSpecified
	}
	lower := strings.ToLower(title)

	containsAny := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny(seniorWords):
		return model.ExperienceSenior
	case containsAny(juniorWords):
		return model.ExperienceJunior
	case containsAny(midLevelWords):
		return model.ExperienceMidLevel
	default:
		return model.ExperienceNotSpecified
	}
}

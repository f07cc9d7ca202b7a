package skills

import (
	"regexp"
	"strconv"
	"strings"
)

// Salary range patterns, tried in order. Covers "$100k - $150k",
// "100,000 - 150,000" and the tight "$100k-$150k" form.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*(?:k)?)\s*-\s*\$(\d{1,3}(?:,\d{3})*(?:k)?)`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*-\s*(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)\$(\d{1,3})k\s*-\s*\$(\d{1,3})k`),
}

// ExtractSalary pulls a salary range out of free text. Returns nil, nil
// when no pattern matches or the numbers do not parse.
func ExtractSalary(text string) (min, max *float64) {
	if text == "" {
		return nil, nil
	}
	for _, re := range salaryPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		lo, okLo := parseSalary(m[1])
		hi, okHi := parseSalary(m[2])
		if !okLo || !okHi {
			continue
		}
		return &lo, &hi
	}
	return nil, nil
}

// parseSalary converts "150,000", "$120k" or "95" style strings to a
// number, expanding the k suffix.
func parseSalary(s string) (float64, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), "$", ""))
	factor := 1.0
	if strings.HasSuffix(s, "k") {
		s = strings.TrimSuffix(s, "k")
		factor = 1000
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * factor, true
}

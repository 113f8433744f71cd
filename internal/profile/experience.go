package profile

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// fallbackWindow is how many calendar years back the global scan still accepts a year.
const fallbackWindow = 10

var yearPattern = regexp.MustCompile(`\b20\d{2}\b`)

// ExperienceAnalyzer estimates years of relevant experience from résumé text.
type ExperienceAnalyzer struct {
	technical []string
	now       func() time.Time
}

// NewExperienceAnalyzer creates an analyzer gated on the technical terms of vocab.
func NewExperienceAnalyzer(vocab Vocabulary) *ExperienceAnalyzer {
	return &ExperienceAnalyzer{
		technical: normalizeTerms(vocab.Technical),
		now:       time.Now,
	}
}

// WithClock replaces the clock used to compute the fallback window.
func (a *ExperienceAnalyzer) WithClock(now func() time.Time) *ExperienceAnalyzer {
	a.now = now
	return a
}

// Estimate returns the number of years between the earliest and the latest
// year found in a technical context. It never returns a negative value.
func (a *ExperienceAnalyzer) Estimate(text string) int {
	text = strings.ToLower(text)

	years := a.ContextualYears(text)
	if len(years) == 0 {
		years = a.RecentYears(text)
	}

	return span(distinct(years))
}

// ContextualYears collects years from every line whose window (the line itself
// and the line right above it) mentions a technical term.
func (a *ExperienceAnalyzer) ContextualYears(text string) []int {
	lines := strings.Split(strings.ToLower(text), "\n")

	var years []int
	for i := range lines {
		window := lines[i]
		if i > 0 {
			window = lines[i-1] + " " + lines[i]
		}

		if !containsAny(window, a.technical) {
			continue
		}

		years = append(years, findYears(window)...)
	}

	return years
}

// RecentYears collects every year of the text that is not older than
// fallbackWindow years.
func (a *ExperienceAnalyzer) RecentYears(text string) []int {
	earliest := a.now().Year() - fallbackWindow

	var years []int
	for _, year := range findYears(text) {
		if year >= earliest {
			years = append(years, year)
		}
	}

	return years
}

func findYears(text string) []int {
	matches := yearPattern.FindAllString(text, -1)
	years := make([]int, 0, len(matches))

	for _, match := range matches {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		years = append(years, year)
	}

	return years
}

func distinct(years []int) []int {
	sorted := slices.Clone(years)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// span expects sorted distinct years.
func span(years []int) int {
	switch len(years) {
	case 0:
		return 0
	case 1:
		return 1
	}

	diff := years[len(years)-1] - years[0]
	if diff < 1 {
		return 1
	}

	return diff
}

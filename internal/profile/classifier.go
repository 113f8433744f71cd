package profile

import "strings"

const (
	seniorYears          = 5
	seniorWithTitleYears = 3
	middleYears          = 2
)

// Classifier assigns a seniority tier and the recognized skills to a profile.
type Classifier struct {
	seniority []string
	skills    []string
}

// NewClassifier creates a classifier using the seniority and skill terms of vocab.
func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{
		seniority: normalizeTerms(vocab.Seniority),
		skills:    normalizeTerms(vocab.Skills),
	}
}

// Level derives the tier from the experience estimate and the seniority terms in text.
func (c *Classifier) Level(text string, years int) Level {
	switch {
	case years >= seniorYears:
		return Senior
	case years >= seniorWithTitleYears && containsAny(strings.ToLower(text), c.seniority):
		return Senior
	case years >= middleYears:
		return Middle
	default:
		return Junior
	}
}

// Skills returns the vocabulary skills present in text, in vocabulary order.
func (c *Classifier) Skills(text string) []string {
	text = strings.ToLower(text)

	skills := make([]string, 0, len(c.skills))
	for _, skill := range c.skills {
		if strings.Contains(text, skill) {
			skills = append(skills, skill)
		}
	}

	return skills
}

// Classify combines Level and Skills into a Result.
func (c *Classifier) Classify(text string, years int) Result {
	if years < 0 {
		years = 0
	}

	return Result{
		ExperienceYears: years,
		Level:           c.Level(text, years),
		Skills:          c.Skills(text),
	}
}

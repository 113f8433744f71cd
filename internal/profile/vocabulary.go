package profile

import "strings"

// Vocabulary holds the fixed keyword lists used by the analyzer and the classifier.
// Terms are matched as lowercase substrings.
type Vocabulary struct {
	// Technical gates year extraction: a line contributes years only when it
	// (or the line above it) contains one of these terms.
	Technical []string `mapstructure:"technical" json:"technical"`
	// Seniority promotes a candidate with 3-4 years of experience to Senior.
	Seniority []string `mapstructure:"seniority" json:"seniority"`
	// Skills is the closed list of technologies reported in a Result.
	Skills []string `mapstructure:"skills" json:"skills"`
}

var (
	defaultTechnical = []string{
		"developer", "sviluppatore", "software", "programmer", "programmatore",
		"web", "backend", "back-end", "frontend", "front-end", "fullstack", "full stack",
		"engineer", "ingegnere", "devops", "informatica",
		"python", "java", "javascript", "typescript", "php", "sql", "react", "node",
	}

	defaultSeniority = []string{
		"senior", "lead", "expert", "manager", "architect", "head of", "principal", "responsabile",
	}

	defaultSkills = []string{
		"python", "java", "javascript", "typescript", "sql", "html", "css", "php",
		"react", "angular", "node", "django", "fastapi", "docker", "kubernetes",
		"linux", "git", "aws",
	}
)

// DefaultVocabulary returns a fresh copy of the built-in vocabularies.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Technical: append([]string(nil), defaultTechnical...),
		Seniority: append([]string(nil), defaultSeniority...),
		Skills:    append([]string(nil), defaultSkills...),
	}
}

// Merge returns the vocabulary with every non-empty list of override replacing the
// corresponding default list.
func (v Vocabulary) Merge(override Vocabulary) Vocabulary {
	if len(override.Technical) > 0 {
		v.Technical = override.Technical
	}
	if len(override.Seniority) > 0 {
		v.Seniority = override.Seniority
	}
	if len(override.Skills) > 0 {
		v.Skills = override.Skills
	}

	return v.normalized()
}

// normalized lowercases and trims every term, dropping empty and repeated ones
// while keeping declaration order.
func (v Vocabulary) normalized() Vocabulary {
	return Vocabulary{
		Technical: normalizeTerms(v.Technical),
		Seniority: normalizeTerms(v.Seniority),
		Skills:    normalizeTerms(v.Skills),
	}
}

func normalizeTerms(terms []string) []string {
	result := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		result = append(result, term)
	}

	return result
}

// containsAny reports whether text contains at least one of the terms.
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}

	return false
}

// Package profile infers experience, seniority and skills from normalized résumé text.
package profile

import (
	"fmt"
	"strings"
)

// Level is the seniority tier of a candidate. Junior < Middle < Senior.
type Level int

const (
	Junior Level = iota
	Middle
	Senior
)

var levelNames = map[Level]string{
	Junior: "Junior",
	Middle: "Middle",
	Senior: "Senior",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText renders the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames[l]; !ok {
		return nil, fmt.Errorf("unknown level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText parses a level name, ignoring case.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name, ignoring case and surrounding whitespace.
func ParseLevel(name string) (Level, error) {
	name = strings.TrimSpace(name)
	for level, levelName := range levelNames {
		if strings.EqualFold(levelName, name) {
			return level, nil
		}
	}
	return Junior, fmt.Errorf("unknown level %q", name)
}

// Result is the classification of a single résumé.
type Result struct {
	ExperienceYears int      `json:"experience_years"`
	Level           Level    `json:"level"`
	Skills          []string `json:"skills"`
}

// SkillsString joins the skills the way they are stored on a candidate record.
func (r Result) SkillsString() string {
	return strings.Join(r.Skills, ", ")
}

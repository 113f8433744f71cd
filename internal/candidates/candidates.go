// Package candidates stores candidate records and the fields derived from their résumés.
package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// LevelPending is the level of a candidate whose résumé has not been analyzed yet.
const LevelPending = "Pending"

// ErrNotFound is returned when no candidate matches the requested id.
var ErrNotFound = errors.New("candidate not found")

// Candidate is a stored candidate record.
type Candidate struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
	Level           string `json:"level"`
	Skills          string `json:"skills"`
	DocumentPath    string `json:"document_path"`
}

// Fields are the values written after a résumé analysis. They are always
// updated together.
type Fields struct {
	ExperienceYears int    `mapstructure:"experience_years" validate:"gte=0"`
	Level           string `mapstructure:"level" validate:"required"`
	Skills          string `mapstructure:"skills"`
	DocumentPath    string `mapstructure:"document_path"`
}

// Store is the persistence collaborator of the screening pipeline.
type Store interface {
	Create(ctx context.Context, c *Candidate) (int64, error)
	Get(ctx context.Context, id int64) (*Candidate, error)
	List(ctx context.Context) ([]*Candidate, error)
	UpdateFields(ctx context.Context, id int64, fields Fields) error
	Close() error
}

var validate = validator.New()

// Validate checks a new candidate before it is stored.
func Validate(c *Candidate) error {
	if c == nil {
		return errors.New("candidate is required")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid candidate: %w", err)
	}
	return nil
}

// columns maps Fields onto column names in a stable order.
func (f Fields) columns() ([]string, []any, error) {
	if err := validate.Struct(f); err != nil {
		return nil, nil, fmt.Errorf("invalid fields: %w", err)
	}

	var values map[string]any
	if err := mapstructure.Decode(f, &values); err != nil {
		return nil, nil, fmt.Errorf("encoding fields: %w", err)
	}

	names := []string{"experience_years", "level", "skills", "document_path"}
	args := make([]any, 0, len(names))
	for _, name := range names {
		value, ok := values[name]
		if !ok {
			return nil, nil, fmt.Errorf("missing field %s", name)
		}
		args = append(args, value)
	}

	return names, args, nil
}

// placeholder renders the n-th (one-based) bind parameter.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func questionPlaceholder(int) string { return "?" }

// updateQuery builds the single UPDATE statement used by both SQL stores.
func updateQuery(id int64, fields Fields, ph placeholder) (string, []any, error) {
	names, args, err := fields.columns()
	if err != nil {
		return "", nil, err
	}

	set := make([]string, 0, len(names))
	for i, name := range names {
		set = append(set, fmt.Sprintf("%s = %s", name, ph(i+1)))
	}

	query := fmt.Sprintf("UPDATE candidates SET %s WHERE id = %s", strings.Join(set, ", "), ph(len(names)+1))
	return query, append(args, id), nil
}

func defaultLevel(c *Candidate) string {
	if strings.TrimSpace(c.Level) == "" {
		return LevelPending
	}
	return c.Level
}

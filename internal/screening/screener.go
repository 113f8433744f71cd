package screening

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidates"
	"github.com/spigell/cv-screener/internal/document"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/profile"
)

// Updater writes the derived fields of a candidate in a single operation.
type Updater interface {
	UpdateFields(ctx context.Context, id int64, fields candidates.Fields) error
}

// Screener analyzes a candidate's résumé and stores the result on the candidate.
type Screener struct {
	analyzer *Analyzer
	store    Updater
	logger   *zap.Logger
}

// NewScreener creates a Screener.
func NewScreener(analyzer *Analyzer, store Updater, log *zap.Logger) *Screener {
	return &Screener{
		analyzer: analyzer,
		store:    store,
		logger:   logger.WithFields(log),
	}
}

// Screen analyzes the PDF at path and, only if the analysis succeeds, updates
// the candidate exactly once.
func (s *Screener) Screen(ctx context.Context, id int64, path string) (profile.Result, error) {
	result, err := s.analyzer.Analyze(ctx, document.File(path))
	if err != nil {
		return profile.Result{}, fmt.Errorf("analyzing résumé of candidate %d: %w", id, err)
	}

	if err := s.Record(ctx, id, path, result); err != nil {
		return profile.Result{}, err
	}

	return result, nil
}

// Record stores a successful analysis on the candidate.
func (s *Screener) Record(ctx context.Context, id int64, path string, result profile.Result) error {
	if s.store == nil {
		return errors.New("candidate store is not configured")
	}

	fields := candidates.Fields{
		ExperienceYears: result.ExperienceYears,
		Level:           result.Level.String(),
		Skills:          result.SkillsString(),
		DocumentPath:    path,
	}

	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return fmt.Errorf("updating candidate %d: %w", id, err)
	}

	logger.WithCandidate(s.logger, id, path).Info("candidate updated",
		zap.Int("experience_years", fields.ExperienceYears),
		zap.String("level", fields.Level),
		zap.String("skills", fields.Skills),
	)

	return nil
}

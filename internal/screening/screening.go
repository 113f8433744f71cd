// Package screening composes text extraction, experience estimation and
// classification, and records the outcome on a candidate.
package screening

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/document"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/profile"
)

const (
	// DefaultTimeout bounds the extraction of a single document.
	DefaultTimeout = 30 * time.Second

	previewLength = 200
)

// Options configures an Analyzer.
type Options struct {
	Vocabulary profile.Vocabulary
	// Timeout bounds document extraction; zero means DefaultTimeout, negative disables it.
	Timeout time.Duration
	Logger  *zap.Logger
	// Clock overrides time.Now for the fallback year window.
	Clock func() time.Time
}

// Analyzer runs the extraction and inference pipeline. It holds no per-call
// state and is safe for concurrent use.
type Analyzer struct {
	extractor  *document.Extractor
	experience *profile.ExperienceAnalyzer
	classifier *profile.Classifier
	timeout    time.Duration
	logger     *zap.Logger
}

// New builds an Analyzer. An empty vocabulary falls back to profile.DefaultVocabulary.
func New(opts Options) *Analyzer {
	log := logger.WithFields(opts.Logger)
	vocab := profile.DefaultVocabulary().Merge(opts.Vocabulary)

	experience := profile.NewExperienceAnalyzer(vocab)
	if opts.Clock != nil {
		experience.WithClock(opts.Clock)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Analyzer{
		extractor:  document.NewExtractor(log),
		experience: experience,
		classifier: profile.NewClassifier(vocab),
		timeout:    timeout,
		logger:     log,
	}
}

// Analyze extracts the text of src and classifies it. Errors are always
// *document.DocumentReadError; no partial result is returned.
func (a *Analyzer) Analyze(ctx context.Context, src document.Source) (profile.Result, error) {
	log := a.logger.With(zap.String(logger.FieldDocument, src.Name()))

	started := time.Now()
	text, err := a.extract(ctx, src)
	if err != nil {
		log.Warn("document extraction failed", zap.Error(err))
		return profile.Result{}, err
	}

	log.Debug("pipeline step",
		zap.String("name", "extract"),
		zap.Int("characters", len(text)),
		zap.Duration("elapsed", time.Since(started)),
		zap.String("preview", logger.TruncateForLog(text, previewLength)),
	)

	result := a.AnalyzeText(text)

	log.Info("document analyzed",
		zap.Int("experience_years", result.ExperienceYears),
		zap.Stringer("level", result.Level),
		zap.Strings("skills", result.Skills),
	)

	return result, nil
}

// AnalyzeText classifies already extracted text.
func (a *Analyzer) AnalyzeText(text string) profile.Result {
	years := a.experience.Estimate(text)
	a.logger.Debug("pipeline step", zap.String("name", "experience"), zap.Int("years", years))

	return a.classifier.Classify(text, years)
}

func (a *Analyzer) extract(ctx context.Context, src document.Source) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return a.extractor.Extract(ctx, src)
}

package screening

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-screener/internal/document"
	"github.com/spigell/cv-screener/internal/profile"
)

// DefaultWorkers is the batch concurrency used when none is given.
const DefaultWorkers = 4

// Outcome is the analysis of one document of a batch.
type Outcome struct {
	Document string         `json:"document"`
	Result   profile.Result `json:"result"`
	Err      error          `json:"-"`
}

// Batch analyzes sources concurrently with at most workers analyses in flight.
// Outcomes keep the order of sources; a failing document does not stop the others.
func (a *Analyzer) Batch(ctx context.Context, sources []document.Source, workers int) []Outcome {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	outcomes := make([]Outcome, len(sources))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range sources {
		g.Go(func() error {
			result, err := a.Analyze(gCtx, src)
			outcomes[i] = Outcome{Document: src.Name(), Result: result, Err: err}
			return nil
		})
	}

	// Workers never fail the group.
	_ = g.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}

	a.logger.Info("batch completed",
		zap.Int("documents", len(sources)),
		zap.Int("failed", failed),
		zap.Int("workers", workers),
	)

	return outcomes
}

package report

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one batch input. Exactly one of Report and Err is set.
type Result struct {
	Input  Input
	Report *Report
	Err    error
}

// EvaluateBatch evaluates inputs with at most limit workers. A failing input
// never aborts the batch; its error is kept on its Result. Cancelling ctx stops
// scheduling and marks the unscheduled inputs with the context error.
func EvaluateBatch(ctx context.Context, b *Builder, inputs []Input, limit int) ([]Result, error) {
	if b == nil {
		return nil, errors.New("report builder is nil")
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i].Input = in
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range inputs {
		if err := gCtx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			report, err := b.Evaluate(inputs[i])
			if err != nil {
				b.log().Warn("candidate evaluation failed",
					zap.String("candidate_id", inputs[i].CandidateID),
					zap.Error(err),
				)
				results[i].Err = err
				return nil
			}
			results[i].Report = report
			return nil
		})
	}

	// Workers never return errors; failures live on the results.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	b.log().Info("batch evaluated",
		zap.Int("total", len(inputs)),
		zap.Int("failed", failed),
		zap.Int("limit", limit),
	)

	return results, ctx.Err()
}

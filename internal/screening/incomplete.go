package screening

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/candidates"
)

type incompleteFilter struct{}

// NewIncomplete drops candidates whose evaluation failed.
func NewIncomplete() Filter {
	return &incompleteFilter{}
}

func (f *incompleteFilter) Name() string { return "incomplete" }

func (f *incompleteFilter) Disable(string) {}

func (f *incompleteFilter) IsEnabled() bool { return true }

func (f *incompleteFilter) Validate(*Config) error { return nil }

func (f *incompleteFilter) Apply(_ context.Context, deps Deps, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeFunc(func(item *candidates.Candidate) bool { return !item.Evaluated() })
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates with incomplete test results",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *incompleteFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true}
}

package screening

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/candidates"
	"github.com/spigell/sauce-fit/internal/jobfit"
)

type minFitLevelFilter struct {
	level jobfit.FitLevel
}

// NewMinFitLevel drops candidates whose job fit is below the configured level.
// Candidates evaluated without a job have no fit level and are kept.
func NewMinFitLevel() Filter {
	return &minFitLevelFilter{}
}

func (f *minFitLevelFilter) Name() string { return "min_fit_level" }

func (f *minFitLevelFilter) Disable(string) {}

func (f *minFitLevelFilter) IsEnabled() bool { return true }

func (f *minFitLevelFilter) Validate(cfg *Config) error {
	level, err := parseMinFitLevel(cfg)
	if err != nil {
		return err
	}
	f.level = level
	return nil
}

func (f *minFitLevelFilter) Apply(_ context.Context, deps Deps, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	initial := c.Len()
	if f.level == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.ExcludeFunc(func(item *candidates.Candidate) bool {
		if item.Report == nil || item.Report.JobFit == nil {
			return false
		}
		return !item.Report.FitLevel().AtLeast(f.level)
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates below minimum fit level",
			zap.String("min_fit_level", string(f.level)),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minFitLevelFilter) Status() Status {
	details := map[string]string{}
	if f.level != "" {
		details["min_fit_level"] = string(f.level)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

// Package screening runs a batch of evaluated candidates through a sequence of
// filters.
package screening

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/ai"
	"github.com/spigell/sauce-fit/internal/candidates"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/logger"
)

// Filter is a single screening step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c *candidates.Candidates) (*candidates.Candidates, Step, error)
}

// Deps are shared by all steps. Explainer may be nil when AI is off.
type Deps struct {
	Logger    *zap.Logger
	Explainer ai.Explainer
}

// Step counts what a filter did.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config is consumed by the filters during validation.
type Config struct {
	ExcludeFile string
	MinFitLevel string
	AI          *AIConfig
}

type AIConfig struct {
	Enabled  bool
	Provider string
	Model    string
}

// Status is runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// StepResult is one executed step inside a Summary.
type StepResult struct {
	Name string
	Step
}

// Summary describes a completed run.
type Summary struct {
	RunID string
	Steps []StepResult
}

// DefaultSteps returns every filter in execution order.
func DefaultSteps() []Filter {
	return []Filter{
		NewIncomplete(),
		NewExcludeFile(),
		NewMinFitLevel(),
		NewAIExplain(),
	}
}

// DisableByName marks the named filter as disabled while keeping it listed.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step, then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c *candidates.Candidates) (*candidates.Candidates, *Summary, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	summary := &Summary{RunID: uuid.NewString()}
	deps.Logger = logger.WithFields(deps.Logger, zap.String(logger.FieldRunID, summary.RunID))

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		summary.Steps = append(summary.Steps, StepResult{Name: step.Name(), Step: info})
		c = next
	}

	return c, summary, nil
}

// Describe returns status entries for the filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func parseMinFitLevel(cfg *Config) (jobfit.FitLevel, error) {
	if cfg == nil || cfg.MinFitLevel == "" {
		return "", nil
	}
	return jobfit.ParseFitLevel(cfg.MinFitLevel)
}

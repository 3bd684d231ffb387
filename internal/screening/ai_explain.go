package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/candidates"
	"github.com/spigell/sauce-fit/internal/logger"
)

type aiExplainFilter struct {
	disabled bool
	reason   string
	config   *AIConfig
}

// NewAIExplain attaches an AI explanation to each candidate evaluated against
// a job. A failed explanation is recorded on the candidate and never drops it.
func NewAIExplain() Filter {
	return &aiExplainFilter{}
}

func (f *aiExplainFilter) Name() string { return "ai_explain" }

func (f *aiExplainFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiExplainFilter) IsEnabled() bool { return !f.disabled }

func (f *aiExplainFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	if !f.IsEnabled() {
		return nil
	}
	if f.config == nil || !f.config.Enabled {
		return fmt.Errorf("ai configuration is required when ai_explain is enabled")
	}
	if strings.TrimSpace(f.config.Model) == "" {
		return fmt.Errorf("ai model is required when ai_explain is enabled")
	}
	return nil
}

func (f *aiExplainFilter) Apply(ctx context.Context, deps Deps, c *candidates.Candidates) (*candidates.Candidates, Step, error) {
	initial := c.Len()
	if deps.Explainer == nil {
		deps.Logger.Info("ai explainer is not configured; skipping ai_explain")
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	explained, failed := 0, 0
	for _, item := range c.Items {
		if err := ctx.Err(); err != nil {
			return c, Step{}, err
		}
		if item.Report == nil {
			continue
		}
		payload, ok := item.Report.Payload()
		if !ok {
			continue
		}

		log := logger.WithFields(deps.Logger, logger.CandidateFields(item.ID, item.Name)...)

		explanation, err := deps.Explainer.Explain(ctx, payload)
		if err != nil {
			failed++
			log.Warn("AI explanation failed", zap.Error(err))
			item.AI = &candidates.AIExplanation{Error: err.Error()}
			continue
		}

		explained++
		log.Debug("AI explanation attached", zap.String(logger.FieldModel, explanation.Model))
		item.AI = &candidates.AIExplanation{
			Provider: explanation.Provider,
			Model:    explanation.Model,
			Text:     explanation.Text,
		}
	}

	deps.Logger.Info("AI explanations completed",
		zap.Int("explained", explained),
		zap.Int("failed", failed),
	)

	return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
}

func (f *aiExplainFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		if f.config.Provider != "" {
			details["provider"] = f.config.Provider
		}
		if f.config.Model != "" {
			details["model"] = f.config.Model
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/sauce-fit/internal/ai"
	"github.com/spigell/sauce-fit/internal/execution"
	"github.com/spigell/sauce-fit/internal/logger"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength     = 200
	maxUserInstructionRunes = 500

	defaultTone     = "Neutral"
	defaultLanguage = "English"
	defaultAudience = "Hiring manager"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Explainer narrates an execution profile comparison with Gemini.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	overrides ai.PromptOverrides
}

func NewExplainer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Explainer{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

func (e *Explainer) SetPromptOverrides(overrides ai.PromptOverrides) {
	e.overrides = overrides
}

// Explain returns the generated text as produced by the model.
func (e *Explainer) Explain(ctx context.Context, payload execution.Payload) (*ai.Explanation, error) {
	if e.generator == nil {
		return nil, errors.New("gemini generator is not configured")
	}
	if strings.TrimSpace(payload.JobID) == "" {
		return nil, errors.New("payload has no job")
	}
	if len(payload.Differences) == 0 {
		return nil, errors.New("payload has no axis differences")
	}

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal execution payload: %w", err)
	}

	system := buildSystemPrompt(e.overrides)
	message := "[Inputs]\n" + string(payloadJSON)

	fields := logger.JobFields(payload.JobID, payload.JobTitle)

	e.logger.Debug("gemini explain request", append(fields,
		zap.Int("prompt_length", utf8.RuneCountInString(system)+utf8.RuneCountInString(message)),
		zap.String("message_preview", logger.TruncateForLog(message, e.maxLogLen)),
	)...)

	raw, err := e.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini explain response", append(fields,
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)...)

	return &ai.Explanation{
		Provider: ai.ProviderGemini,
		Model:    e.generator.Model(),
		Text:     raw,
	}, nil
}

func buildSystemPrompt(overrides ai.PromptOverrides) string {
	replacer := strings.NewReplacer(
		"{{TONE}}", orDefault(sanitizeLine(overrides.Tone), defaultTone),
		"{{LANGUAGE}}", orDefault(sanitizeLine(overrides.Language), defaultLanguage),
		"{{AUDIENCE}}", orDefault(sanitizeLine(overrides.Audience), defaultAudience),
		"{{USER_INSTRUCTIONS}}", sanitizeBlock(overrides.UserInstructions, maxUserInstructionRunes),
	)
	return strings.TrimSpace(replacer.Replace(promptTemplate))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// sanitizeLine collapses whitespace and neutralizes bracketed section markers.
func sanitizeLine(s string) string {
	s = strings.NewReplacer("[", "(", "]", ")").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeBlock renders free text as an indented list, one item per input
// line, capped at limit runes of content.
func sanitizeBlock(s string, limit int) string {
	var lines []string
	budget := limit
	for _, line := range strings.Split(s, "\n") {
		line = sanitizeLine(line)
		if line == "" || budget <= 0 {
			continue
		}
		runes := []rune(line)
		if len(runes) > budget {
			runes = runes[:budget]
		}
		budget -= len(runes)
		lines = append(lines, "  - "+string(runes))
	}

	if len(lines) == 0 {
		return "  - none"
	}
	return strings.Join(lines, "\n")
}

// Package ai defines the AI-explanation collaborator used to narrate an
// execution profile comparison.
package ai

import (
	"context"

	"github.com/spigell/sauce-fit/internal/execution"
)

const ProviderGemini = "gemini"

// Explanation is the generated narrative. Text is returned as produced.
type Explanation struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}

type Explainer interface {
	Explain(ctx context.Context, payload execution.Payload) (*Explanation, error)
}

// PromptOverrides tune the narrative without changing the payload.
type PromptOverrides struct {
	Tone             string `mapstructure:"tone"`
	Language         string `mapstructure:"language"`
	Audience         string `mapstructure:"audience"`
	UserInstructions string `mapstructure:"user-instructions"`
}

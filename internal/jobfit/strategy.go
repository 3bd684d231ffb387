package jobfit

import (
	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// Method selects the job-fit algorithm. Callers choose explicitly.
type Method string

const (
	// MethodWeighted scores against a structured JobProfile.
	MethodWeighted Method = "weighted"
	// MethodPreferredTypes scores against a list of preferred types.
	//
	// Deprecated: use MethodWeighted.
	MethodPreferredTypes Method = "preferred_types"
)

// Target is what a distribution is evaluated against.
type Target struct {
	Method         Method
	Profile        *JobProfile
	PreferredTypes []worktype.Code
}

// Outcome carries the single score for both methods and the full analysis for
// the weighted one.
type Outcome struct {
	Method   Method    `json:"method"`
	Score    float64   `json:"score"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// Evaluate dispatches on target.Method.
func (s *Scorer) Evaluate(dist worktype.Distribution, target Target) (*Outcome, error) {
	switch target.Method {
	case MethodWeighted:
		if target.Profile == nil {
			return nil, fiterr.Validation("target.profile", "weighted method requires a job profile")
		}
		analysis, err := s.Analyze(dist, *target.Profile)
		if err != nil {
			return nil, err
		}
		return &Outcome{Method: MethodWeighted, Score: float64(analysis.OverallScore), Analysis: analysis}, nil
	case MethodPreferredTypes:
		for _, code := range target.PreferredTypes {
			if !code.Valid() {
				return nil, fiterr.Validation("target.preferred_types", "unknown work type code %q", code)
			}
		}
		//nolint:staticcheck // legacy path selected explicitly by the caller
		return &Outcome{Method: MethodPreferredTypes, Score: SimpleScore(dist, target.PreferredTypes)}, nil
	default:
		return nil, fiterr.Validation("target.method", "unsupported job-fit method %q", target.Method)
	}
}

package jobfit

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// FitLevel is the categorical verdict of a candidate-to-job comparison.
type FitLevel string

const (
	FitExcellent FitLevel = "excellent"
	FitGood      FitLevel = "good"
	FitModerate  FitLevel = "moderate"
	FitLow       FitLevel = "low"
)

// Overall score bands, calibrated against reviewed hiring outcomes.
const (
	excellentThreshold = 85
	goodThreshold      = 70
	moderateThreshold  = 60
)

// ParseFitLevel accepts a fit level name in any case.
func ParseFitLevel(s string) (FitLevel, error) {
	level := FitLevel(strings.ToLower(strings.TrimSpace(s)))
	if level.rank() == 0 {
		return "", fiterr.Validation("fit_level", "unknown fit level %q", s)
	}
	return level, nil
}

func (l FitLevel) rank() int {
	switch l {
	case FitExcellent:
		return 4
	case FitGood:
		return 3
	case FitModerate:
		return 2
	case FitLow:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether l is the same as or better than floor. Unknown levels
// never qualify.
func (l FitLevel) AtLeast(floor FitLevel) bool {
	return l.rank() > 0 && l.rank() >= floor.rank()
}

// RecommendationLevel is the hiring verdict.
type RecommendationLevel string

const (
	StronglyRecommended RecommendationLevel = "strongly_recommended"
	Recommended         RecommendationLevel = "recommended"
	Conditional         RecommendationLevel = "conditional"
	NotRecommended      RecommendationLevel = "not_recommended"
)

// CompetencyResult is a competency together with the candidate's score on it.
type CompetencyResult struct {
	WorkType             worktype.Code `json:"work_type"`
	Name                 string        `json:"name"`
	Weight               Weight        `json:"weight"`
	Score                float64       `json:"score"`
	MinScore             float64       `json:"min_score"`
	OptimalScore         float64       `json:"optimal_score"`
	Description          string        `json:"description"`
	InterviewCheckpoints []string      `json:"interview_checkpoints"`
}

// Recommendation is the hiring advice derived from the fit level.
type Recommendation struct {
	Level               RecommendationLevel `json:"level"`
	Reasoning           string              `json:"reasoning"`
	CriticalCheckpoints []string            `json:"critical_checkpoints"`
}

// Analysis is the weighted competency verdict for one candidate and one job.
// Strengths, Weaknesses and AdequateCompetencies partition the job's
// competency list.
type Analysis struct {
	JobID                string             `json:"job_id"`
	JobTitle             string             `json:"job_title"`
	OverallScore         int                `json:"overall_score"`
	FitLevel             FitLevel           `json:"fit_level"`
	CriticalFailures     int                `json:"critical_failures"`
	Strengths            []CompetencyResult `json:"strengths"`
	Weaknesses           []CompetencyResult `json:"weaknesses"`
	AdequateCompetencies []CompetencyResult `json:"adequate_competencies"`
	HiringRecommendation Recommendation     `json:"hiring_recommendation"`
}

// Scorer evaluates distributions against job profiles, naming work types
// through the injected registry.
type Scorer struct {
	registry *worktype.Registry
}

func NewScorer(registry *worktype.Registry) *Scorer {
	return &Scorer{registry: registry}
}

// Analyze classifies each competency and derives the overall score, fit level
// and hiring recommendation.
func (s *Scorer) Analyze(dist worktype.Distribution, job JobProfile) (*Analysis, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job profile %q: %w", job.JobID, err)
	}

	analysis := &Analysis{
		JobID:                job.JobID,
		JobTitle:             job.Title,
		Strengths:            []CompetencyResult{},
		Weaknesses:           []CompetencyResult{},
		AdequateCompetencies: []CompetencyResult{},
	}

	weightedSum, totalWeight := 0.0, 0
	for _, c := range job.Competencies {
		// The type universe is fixed, so a miss only happens with a foreign distribution.
		score, _ := dist.Lookup(c.WorkType)
		result := CompetencyResult{
			WorkType:             c.WorkType,
			Name:                 s.registry.Name(c.WorkType),
			Weight:               c.Weight,
			Score:                score,
			MinScore:             c.MinScore,
			OptimalScore:         c.OptimalScore,
			Description:          c.Description,
			InterviewCheckpoints: append([]string{}, c.InterviewCheckpoints...),
		}

		switch {
		case score >= c.OptimalScore:
			analysis.Strengths = append(analysis.Strengths, result)
		case score < c.MinScore:
			analysis.Weaknesses = append(analysis.Weaknesses, result)
			if c.Weight == WeightCritical {
				analysis.CriticalFailures++
			}
		default:
			analysis.AdequateCompetencies = append(analysis.AdequateCompetencies, result)
		}

		weightedSum += score * float64(c.Weight.Value())
		totalWeight += c.Weight.Value()
	}

	analysis.OverallScore = int(math.Round(weightedSum / float64(totalWeight)))
	analysis.FitLevel = fitLevel(analysis.OverallScore, analysis.CriticalFailures)
	analysis.HiringRecommendation = recommend(job.Title, analysis)

	return analysis, nil
}

// fitLevel applies the critical-failure override before the score bands.
func fitLevel(overall, criticalFailures int) FitLevel {
	if criticalFailures > 0 {
		return FitLow
	}

	switch {
	case overall >= excellentThreshold:
		return FitExcellent
	case overall >= goodThreshold:
		return FitGood
	case overall >= moderateThreshold:
		return FitModerate
	default:
		return FitLow
	}
}

func recommend(title string, a *Analysis) Recommendation {
	noCritical := a.CriticalFailures == 0
	weakNames := competencyNames(a.Weaknesses, nil)

	switch {
	case a.FitLevel == FitExcellent && len(a.Weaknesses) == 0:
		return Recommendation{
			Level:               StronglyRecommended,
			Reasoning:           fmt.Sprintf("Strong match for %s: every competency meets its minimum and the overall score is %d.", title, a.OverallScore),
			CriticalCheckpoints: []string{},
		}
	case a.FitLevel == FitExcellent || (a.FitLevel == FitGood && noCritical):
		reasoning := fmt.Sprintf("Good match for %s (overall score %d).", title, a.OverallScore)
		if len(weakNames) > 0 {
			reasoning += fmt.Sprintf(" Verify in interview: %s.", strings.Join(weakNames, ", "))
		}
		return Recommendation{
			Level:               Recommended,
			Reasoning:           reasoning,
			CriticalCheckpoints: checkpoints(a.Weaknesses, nil),
		}
	case a.FitLevel == FitModerate && noCritical:
		reasoning := fmt.Sprintf("Partial match for %s (overall score %d).", title, a.OverallScore)
		if len(weakNames) > 0 {
			reasoning += fmt.Sprintf(" Proceed only if the interview confirms: %s.", strings.Join(weakNames, ", "))
		} else {
			reasoning += " No competency is below its minimum, but several are short of optimal."
		}
		return Recommendation{
			Level:               Conditional,
			Reasoning:           reasoning,
			CriticalCheckpoints: checkpoints(a.Weaknesses, nil),
		}
	default:
		critical := func(r CompetencyResult) bool { return r.Weight == WeightCritical }
		reasoning := fmt.Sprintf("Low match for %s (overall score %d).", title, a.OverallScore)
		if !noCritical {
			reasoning = fmt.Sprintf("Critical competencies for %s are below the minimum: %s.",
				title, strings.Join(competencyNames(a.Weaknesses, critical), ", "))
		}
		return Recommendation{
			Level:               NotRecommended,
			Reasoning:           reasoning,
			CriticalCheckpoints: checkpoints(a.Weaknesses, critical),
		}
	}
}

func competencyNames(results []CompetencyResult, keep func(CompetencyResult) bool) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		if keep != nil && !keep(r) {
			continue
		}
		names = append(names, fmt.Sprintf("%s (%s)", r.Name, r.WorkType))
	}
	return names
}

func checkpoints(results []CompetencyResult, keep func(CompetencyResult) bool) []string {
	out := make([]string, 0)
	for _, r := range results {
		if keep != nil && !keep(r) {
			continue
		}
		for _, cp := range r.InterviewCheckpoints {
			if !slices.Contains(out, cp) {
				out = append(out, cp)
			}
		}
	}
	return out
}

// Package profile derives a readable analysis from a work type score vector:
// ranking, dispersion, per-stage insight and metadata-driven talking points.
package profile

import (
	"fmt"
	"math"
	"slices"

	"github.com/spigell/sauce-fit/internal/scoring"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const (
	// A standard deviation under this many points means no type stands out.
	balancedStdDev = 15.0
	// A lead of more than this many points over rank 2 marks a dominant type.
	dominantLead = 15.0

	edgeTypes = 3
)

// Pattern is the categorical reading of the dispersion statistics.
type Pattern string

const (
	PatternDominant       Pattern = "dominant"
	PatternBalanced       Pattern = "balanced"
	PatternDifferentiated Pattern = "differentiated"
)

// Primary summarises the top ranked type.
type Primary struct {
	Code        worktype.Code `json:"code"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Score       float64       `json:"score"`
}

// Statistics describes how spread out the scores are.
type Statistics struct {
	Range             float64 `json:"range"`
	Average           float64 `json:"average"`
	StandardDeviation float64 `json:"standard_deviation"`
	IsBalanced        bool    `json:"is_balanced"`
	IsDominant        bool    `json:"is_dominant"`
	Pattern           Pattern `json:"pattern"`
}

// Analysis is the full profile reading of one vector.
type Analysis struct {
	Primary          Primary               `json:"primary"`
	Distribution     worktype.Distribution `json:"distribution"`
	TopTypes         []worktype.Code       `json:"top_types"`
	BottomTypes      []worktype.Code       `json:"bottom_types"`
	Statistics       Statistics            `json:"statistics"`
	StageInsights    []StageInsight        `json:"stage_insights"`
	Strengths        []string              `json:"strengths"`
	DevelopmentAreas []string              `json:"development_areas"`
	InterviewFocus   []string              `json:"interview_focus"`
}

// Analyzer reads vectors against an injected registry.
type Analyzer struct {
	registry *worktype.Registry
}

func NewAnalyzer(registry *worktype.Registry) *Analyzer {
	return &Analyzer{registry: registry}
}

// Analyze builds the analysis. selections may be nil, in which case every
// stage insight reports no data.
func (a *Analyzer) Analyze(vector worktype.Vector, selections scoring.Selections) (*Analysis, error) {
	if vector.IsZero() {
		return nil, fmt.Errorf("analyze: score vector is empty")
	}

	dist := vector.Distribution()

	insights, err := StageInsights(selections)
	if err != nil {
		return nil, err
	}

	top := dist.Top(edgeTypes).Codes()
	bottom := dist.Bottom(edgeTypes).Codes()

	lead := dist[0]
	info, _ := a.registry.Lookup(lead.Code)

	return &Analysis{
		Primary: Primary{
			Code:        lead.Code,
			Name:        a.registry.Name(lead.Code),
			Description: info.Description,
			Score:       lead.Score,
		},
		Distribution:     dist,
		TopTypes:         top,
		BottomTypes:      bottom,
		Statistics:       Describe(dist),
		StageInsights:    insights,
		Strengths:        a.collect(top, func(i worktype.Info) []string { return i.Strengths }),
		DevelopmentAreas: a.collect(bottom, func(i worktype.Info) []string { return i.DevelopmentAreas }),
		InterviewFocus: a.collect([]worktype.Code{lead.Code, bottom[len(bottom)-1]},
			func(i worktype.Info) []string { return i.InterviewFocus }),
	}, nil
}

func (a *Analyzer) collect(codes []worktype.Code, pick func(worktype.Info) []string) []string {
	out := make([]string, 0)
	for _, code := range codes {
		info, ok := a.registry.Lookup(code)
		if !ok {
			continue
		}
		for _, item := range pick(info) {
			if !slices.Contains(out, item) {
				out = append(out, item)
			}
		}
	}
	return out
}

// Describe computes range, mean and population standard deviation.
func Describe(dist worktype.Distribution) Statistics {
	if len(dist) == 0 {
		return Statistics{Pattern: PatternBalanced, IsBalanced: true}
	}

	high, low := dist[0].Score, dist[0].Score
	sum := 0.0
	for _, entry := range dist {
		high = max(high, entry.Score)
		low = min(low, entry.Score)
		sum += entry.Score
	}
	mean := sum / float64(len(dist))

	variance := 0.0
	for _, entry := range dist {
		variance += (entry.Score - mean) * (entry.Score - mean)
	}
	stddev := math.Sqrt(variance / float64(len(dist)))

	stats := Statistics{
		Range:             high - low,
		Average:           mean,
		StandardDeviation: stddev,
		IsBalanced:        stddev < balancedStdDev,
	}
	if len(dist) > 1 {
		stats.IsDominant = dist[0].Score-dist[1].Score > dominantLead
	}

	switch {
	case stats.IsDominant:
		stats.Pattern = PatternDominant
	case stats.IsBalanced:
		stats.Pattern = PatternBalanced
	default:
		stats.Pattern = PatternDifferentiated
	}

	return stats
}

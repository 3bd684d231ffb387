// Package team compares a candidate's primary work type with an existing team.
package team

import (
	"fmt"
	"math"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// Composition counts team members per primary work type. Absent codes mean zero.
type Composition map[worktype.Code]int

// Validate rejects unknown codes and negative counts.
func (c Composition) Validate() error {
	for code, count := range c {
		if !code.Valid() {
			return fiterr.Validation("team_composition", "unknown work type code %q", code)
		}
		if count < 0 {
			return fiterr.Validation("team_composition", "negative count %d for %s", count, code)
		}
	}
	return nil
}

// Total sums all member counts.
func (c Composition) Total() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

// Clone returns an independent copy; nil stays nil.
func (c Composition) Clone() Composition {
	if c == nil {
		return nil
	}
	out := make(Composition, len(c))
	for code, count := range c {
		out[code] = count
	}
	return out
}

// Comparison describes how the team looks before and after adding the candidate.
type Comparison struct {
	ApplicantType    worktype.Code `json:"applicant_type"`
	ExistingCount    int           `json:"existing_count"`
	TotalMembers     int           `json:"total_members"`
	Before           Composition   `json:"before"`
	After            Composition   `json:"after"`
	PercentageBefore int           `json:"percentage_before"`
	PercentageAfter  int           `json:"percentage_after"`
	IsNewType        bool          `json:"is_new_type"`
}

// Compare returns nil, nil when there is no team to compare against.
// The input composition is never modified.
func Compare(composition Composition, applicant worktype.Code) (*Comparison, error) {
	if len(composition) == 0 {
		return nil, nil
	}
	if !applicant.Valid() {
		return nil, fiterr.Validation("applicant_type", "unknown work type code %q", applicant)
	}
	if err := composition.Validate(); err != nil {
		return nil, err
	}

	before := composition.Clone()
	after := composition.Clone()
	after[applicant]++

	existing := before[applicant]
	total := before.Total()

	return &Comparison{
		ApplicantType:    applicant,
		ExistingCount:    existing,
		TotalMembers:     total,
		Before:           before,
		After:            after,
		PercentageBefore: percentage(existing, total),
		PercentageAfter:  percentage(existing+1, total+1),
		IsNewType:        existing == 0,
	}, nil
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// LegacyResult is the scored form of a team comparison.
type LegacyResult struct {
	*Comparison
	DiversityScore int    `json:"diversity_score"`
	Label          string `json:"label"`
}

// LegacyScore turns a comparison into a diversity score: 100 for a type the
// team lacks, otherwise 100 minus the type's share after joining.
//
// Deprecated: scoring team fit is a product decision; use Compare and present
// the descriptive snapshot instead.
func LegacyScore(composition Composition, applicant worktype.Code) (*LegacyResult, error) {
	comparison, err := Compare(composition, applicant)
	if err != nil {
		return nil, fmt.Errorf("compare team: %w", err)
	}
	if comparison == nil {
		return nil, nil
	}

	score := 100
	label := "adds a new work type to the team"
	if !comparison.IsNewType {
		score = 100 - comparison.PercentageAfter
		label = fmt.Sprintf("%s would make up %d%% of the team", applicant, comparison.PercentageAfter)
	}

	return &LegacyResult{Comparison: comparison, DiversityScore: score, Label: label}, nil
}

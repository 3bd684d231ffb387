// Package scoring combines statement-test answers and verb-test selections
// into one normalized work type score vector.
package scoring

import (
	"fmt"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const (
	// Both halves of the exercise carry equal evidence; the blend is fixed.
	statementWeight = 0.5
	verbWeight      = 0.5

	minLikert = 1
	maxLikert = 5
)

// Answers holds statement-test Likert answers (1..5) per work type.
type Answers map[worktype.Code][]int

// Selections holds selected verb identifiers per SAUCE stage.
type Selections map[worktype.Stage][]string

// Result is the aggregated outcome for one candidate.
type Result struct {
	Vector          worktype.Vector `json:"scores"`
	Primary         worktype.Code   `json:"primary_type"`
	StatementScores worktype.Vector `json:"statement_scores"`
	VerbScores      worktype.Vector `json:"verb_scores"`
}

// Aggregate computes the blended score vector and primary type. Inputs are
// read-only; nothing partial is returned on error.
func Aggregate(answers Answers, selections Selections) (*Result, error) {
	statementScores, err := StatementScores(answers)
	if err != nil {
		return nil, err
	}

	verbScores, err := VerbScores(selections)
	if err != nil {
		return nil, err
	}

	blended := make(map[worktype.Code]float64, len(worktype.AllCodes))
	for _, code := range worktype.AllCodes {
		statement, _ := statementScores.Get(code)
		verb, _ := verbScores.Get(code)
		blended[code] = statement*statementWeight + verb*verbWeight
	}

	vector, err := worktype.NewVector(blended)
	if err != nil {
		return nil, fmt.Errorf("blend scores: %w", err)
	}

	return &Result{
		Vector:          vector,
		Primary:         PrimaryType(vector),
		StatementScores: statementScores,
		VerbScores:      verbScores,
	}, nil
}

// StatementScores normalizes the mean Likert answer of each type to 0..100.
func StatementScores(answers Answers) (worktype.Vector, error) {
	for code := range answers {
		if !code.Valid() {
			return worktype.Vector{}, fiterr.Validation("statements", "unknown work type code %q", code)
		}
	}

	scores := make(map[worktype.Code]float64, len(worktype.AllCodes))
	for _, code := range worktype.AllCodes {
		group := answers[code]
		if len(group) == 0 {
			return worktype.Vector{}, fiterr.InsufficientData("statements."+string(code), "no statement answers")
		}

		sum := 0
		for i, answer := range group {
			if answer < minLikert || answer > maxLikert {
				return worktype.Vector{}, fiterr.Validation(
					fmt.Sprintf("statements.%s[%d]", code, i),
					"answer %d outside %d..%d", answer, minLikert, maxLikert,
				)
			}
			sum += answer
		}

		scores[code] = float64(sum) / float64(len(group)*maxLikert) * 100
	}

	return worktype.NewVector(scores)
}

// VerbScores is the share of all selections whose verb belongs to each type.
func VerbScores(selections Selections) (worktype.Vector, error) {
	for stage := range selections {
		if !stage.Valid() {
			return worktype.Vector{}, fiterr.Validation("selections", "unknown SAUCE stage %q", stage)
		}
	}

	counts := make(map[worktype.Code]int, len(worktype.AllCodes))
	total := 0
	for _, stage := range worktype.AllStages {
		ids, ok := selections[stage]
		if !ok {
			return worktype.Vector{}, fiterr.InsufficientData("selections."+string(stage), "stage is missing")
		}
		for _, id := range ids {
			code, err := worktype.ParseVerbID(id)
			if err != nil {
				return worktype.Vector{}, err
			}
			counts[code]++
			total++
		}
	}

	if total == 0 {
		return worktype.Vector{}, fiterr.InsufficientData("selections", "no verbs selected in any stage")
	}

	scores := make(map[worktype.Code]float64, len(worktype.AllCodes))
	for _, code := range worktype.AllCodes {
		scores[code] = float64(counts[code]) / float64(total) * 100
	}

	return worktype.NewVector(scores)
}

// PrimaryType returns the strictly highest scoring type; on ties the first
// entry in vector order wins.
func PrimaryType(vector worktype.Vector) worktype.Code {
	var (
		primary worktype.Code
		best    float64
	)
	for i, entry := range vector.Entries() {
		if i == 0 || entry.Value > best {
			primary = entry.Code
			best = entry.Value
		}
	}
	return primary
}

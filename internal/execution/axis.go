// Package execution re-projects a work type vector onto five bipolar execution
// axes and classifies the gaps between a job's and a candidate's profile.
package execution

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const (
	minAxisScore = 0
	maxAxisScore = 100
)

// AxisScore is a score in [0,100]. The zero value is a valid 0; any other
// value must come from NewAxisScore.
type AxisScore struct {
	value int
}

// NewAxisScore fails outside [0,100]; it never clamps.
func NewAxisScore(v int) (AxisScore, error) {
	if v < minAxisScore || v > maxAxisScore {
		return AxisScore{}, fiterr.Validation("axis_score", "%d outside [%d,%d]", v, minAxisScore, maxAxisScore)
	}
	return AxisScore{value: v}, nil
}

// MustAxisScore is NewAxisScore for constants.
func MustAxisScore(v int) AxisScore {
	s, err := NewAxisScore(v)
	if err != nil {
		panic(err)
	}
	return s
}

func (s AxisScore) Int() int { return s.value }

func (s AxisScore) String() string { return strconv.Itoa(s.value) }

func (s AxisScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

func (s *AxisScore) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode axis score: %w", err)
	}
	parsed, err := NewAxisScore(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Axis is one execution dimension.
type Axis string

const (
	DecisionSpeed        Axis = "decision_speed"
	UncertaintyTolerance Axis = "uncertainty_tolerance"
	Autonomy             Axis = "autonomy"
	RelationshipFocus    Axis = "relationship_focus"
	PrecisionRequirement Axis = "precision_requirement"
)

//nolint:gochecknoglobals // fixed enumeration
var AllAxes = []Axis{DecisionSpeed, UncertaintyTolerance, Autonomy, RelationshipFocus, PrecisionRequirement}

// Poles lists the work types that pull an axis up or down.
type Poles struct {
	High []worktype.Code
	Low  []worktype.Code
}

//nolint:gochecknoglobals // fixed projection table
var axisPoles = map[Axis]Poles{
	DecisionSpeed: {
		High: []worktype.Code{worktype.EE, worktype.EG},
		Low:  []worktype.Code{worktype.UR, worktype.SA},
	},
	UncertaintyTolerance: {
		High: []worktype.Code{worktype.AS, worktype.AF, worktype.EE},
		Low:  []worktype.Code{worktype.SE, worktype.SA},
	},
	Autonomy: {
		High: []worktype.Code{worktype.UR, worktype.AF, worktype.EE},
		Low:  []worktype.Code{worktype.CA, worktype.CH, worktype.UM},
	},
	RelationshipFocus: {
		High: []worktype.Code{worktype.CA, worktype.CH, worktype.UM},
		Low:  []worktype.Code{worktype.UR, worktype.EG, worktype.SA},
	},
	PrecisionRequirement: {
		High: []worktype.Code{worktype.SE, worktype.SA, worktype.UR},
		Low:  []worktype.Code{worktype.EE, worktype.AS},
	},
}

// PolesOf returns a copy of the axis' pole table entry.
func PolesOf(axis Axis) (Poles, bool) {
	p, ok := axisPoles[axis]
	if !ok {
		return Poles{}, false
	}
	return Poles{
		High: append([]worktype.Code(nil), p.High...),
		Low:  append([]worktype.Code(nil), p.Low...),
	}, true
}

package execution

import (
	"fmt"
	"math"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// neutralScore stands in for work types a job profile does not mention.
const neutralScore = 50.0

// Profile is exactly one score per execution axis.
type Profile struct {
	DecisionSpeed        AxisScore `json:"decision_speed"`
	UncertaintyTolerance AxisScore `json:"uncertainty_tolerance"`
	Autonomy             AxisScore `json:"autonomy"`
	RelationshipFocus    AxisScore `json:"relationship_focus"`
	PrecisionRequirement AxisScore `json:"precision_requirement"`
}

// Get returns the score on axis.
func (p Profile) Get(axis Axis) (AxisScore, bool) {
	switch axis {
	case DecisionSpeed:
		return p.DecisionSpeed, true
	case UncertaintyTolerance:
		return p.UncertaintyTolerance, true
	case Autonomy:
		return p.Autonomy, true
	case RelationshipFocus:
		return p.RelationshipFocus, true
	case PrecisionRequirement:
		return p.PrecisionRequirement, true
	default:
		return AxisScore{}, false
	}
}

func (p *Profile) set(axis Axis, score AxisScore) {
	switch axis {
	case DecisionSpeed:
		p.DecisionSpeed = score
	case UncertaintyTolerance:
		p.UncertaintyTolerance = score
	case Autonomy:
		p.Autonomy = score
	case RelationshipFocus:
		p.RelationshipFocus = score
	case PrecisionRequirement:
		p.PrecisionRequirement = score
	}
}

// Transform projects a vector: clamp((high mean - low mean + 100) / 2, 0, 100),
// rounded.
func Transform(vector worktype.Vector) (Profile, error) {
	if vector.IsZero() {
		return Profile{}, fiterr.Validation("score_vector", "vector is empty")
	}

	var profile Profile
	for _, axis := range AllAxes {
		poles, ok := PolesOf(axis)
		if !ok {
			return Profile{}, fiterr.Validation("axis", "no poles defined for %s", axis)
		}

		high, err := poleMean(vector, poles.High)
		if err != nil {
			return Profile{}, err
		}
		low, err := poleMean(vector, poles.Low)
		if err != nil {
			return Profile{}, err
		}

		raw := (high - low + 100) / 2
		normalized := math.Round(math.Max(0, math.Min(100, raw)))

		score, err := NewAxisScore(int(normalized))
		if err != nil {
			return Profile{}, fmt.Errorf("axis %s: %w", axis, err)
		}
		profile.set(axis, score)
	}

	return profile, nil
}

func poleMean(vector worktype.Vector, codes []worktype.Code) (float64, error) {
	sum := 0.0
	for _, code := range codes {
		v, ok := vector.Get(code)
		if !ok {
			return 0, fiterr.Validation("score_vector", "missing work type %s", code)
		}
		sum += v
	}
	return sum / float64(len(codes)), nil
}

// JobProfileVector is a job's ideal vector: each competency's optimal score and a
// neutral 50 for the types the job does not mention.
func JobProfileVector(job jobfit.JobProfile) (worktype.Vector, error) {
	scores := make(map[worktype.Code]float64, len(worktype.AllCodes))
	for _, code := range worktype.AllCodes {
		scores[code] = neutralScore
	}
	for _, c := range job.Competencies {
		if !c.WorkType.Valid() {
			return worktype.Vector{}, fiterr.Validation("work_type", "unknown work type code %q", c.WorkType)
		}
		scores[c.WorkType] = c.OptimalScore
	}
	return worktype.NewVector(scores)
}

// FromJobProfile derives the execution profile a job asks for.
func FromJobProfile(job jobfit.JobProfile) (Profile, error) {
	vector, err := JobProfileVector(job)
	if err != nil {
		return Profile{}, fmt.Errorf("job profile %q: %w", job.JobID, err)
	}
	return Transform(vector)
}

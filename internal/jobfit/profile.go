// Package jobfit scores a work type distribution against a job's required
// competencies.
package jobfit

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

// Weight is the importance of a competency.
type Weight string

const (
	WeightCritical  Weight = "critical"
	WeightImportant Weight = "important"
	WeightPreferred Weight = "preferred"
)

// Value is the multiplier used in the weighted mean.
func (w Weight) Value() int {
	switch w {
	case WeightCritical:
		return 3
	case WeightImportant:
		return 2
	case WeightPreferred:
		return 1
	default:
		return 0
	}
}

// Competency is a job's requirement on one work type.
type Competency struct {
	WorkType             worktype.Code `json:"work_type" validate:"worktype"`
	Weight               Weight        `json:"weight" validate:"oneof=critical important preferred"`
	MinScore             float64       `json:"min_score" validate:"gte=0,lte=100,ltefield=OptimalScore"`
	OptimalScore         float64       `json:"optimal_score" validate:"gte=0,lte=100"`
	Description          string        `json:"description"`
	InterviewCheckpoints []string      `json:"interview_checkpoints"`
}

// JobProfile is immutable reference data describing what a job requires.
type JobProfile struct {
	JobID        string       `json:"job_id" validate:"required"`
	Title        string       `json:"title" validate:"required"`
	Competencies []Competency `json:"competencies" validate:"required,min=1,dive"`
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("worktype", func(fl validator.FieldLevel) bool {
		code, ok := fl.Field().Interface().(worktype.Code)
		return ok && code.Valid()
	}); err != nil {
		panic(fmt.Sprintf("jobfit: register worktype validation: %v", err))
	}

	return v
}

// Validate checks bounds, weights, min <= optimal and that no work type is
// listed twice.
func (p JobProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fiterr.Validation(fe.Namespace(), "failed %q check (param %q, value %v)", fe.Tag(), fe.Param(), fe.Value())
		}
		return fiterr.Validation("job_profile", "%v", err)
	}

	seen := make(map[worktype.Code]bool, len(p.Competencies))
	for i, c := range p.Competencies {
		if seen[c.WorkType] {
			return fiterr.Validation(fmt.Sprintf("JobProfile.competencies[%d].work_type", i), "work type %s listed twice", c.WorkType)
		}
		seen[c.WorkType] = true
	}

	return nil
}

// Clone returns a deep copy.
func (p JobProfile) Clone() JobProfile {
	out := p
	out.Competencies = make([]Competency, len(p.Competencies))
	for i, c := range p.Competencies {
		c.InterviewCheckpoints = slices.Clone(c.InterviewCheckpoints)
		out.Competencies[i] = c
	}
	return out
}

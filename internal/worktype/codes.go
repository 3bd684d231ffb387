// Package worktype holds the fixed universe of work types, SAUCE stages and the
// validated score vector every other engine package consumes.
package worktype

import (
	"strings"

	"github.com/spigell/sauce-fit/internal/fiterr"
)

// Code identifies one of the ten work types.
type Code string

const (
	SE Code = "SE"
	SA Code = "SA"
	AS Code = "AS"
	AF Code = "AF"
	UM Code = "UM"
	UR Code = "UR"
	CA Code = "CA"
	CH Code = "CH"
	EE Code = "EE"
	EG Code = "EG"
)

// AllCodes is the canonical iteration order. Tie-breaks across the engine
// resolve in favour of the earlier code.
//
//nolint:gochecknoglobals // fixed enumeration
var AllCodes = []Code{SE, SA, AS, AF, UM, UR, CA, CH, EE, EG}

// Group is a parent group holding two codes.
type Group string

const (
	GroupS Group = "S"
	GroupA Group = "A"
	GroupU Group = "U"
	GroupC Group = "C"
	GroupE Group = "E"
)

// Stage is one phase of the verb-selection exercise.
type Stage string

const (
	StageStart       Stage = "start"
	StageAdvance     Stage = "advance"
	StageUtility     Stage = "utility"
	StageCommunicate Stage = "communicate"
	StageExpert      Stage = "expert"
)

//nolint:gochecknoglobals // fixed enumeration
var AllStages = []Stage{StageStart, StageAdvance, StageUtility, StageCommunicate, StageExpert}

//nolint:gochecknoglobals // fixed enumeration
var stageGroups = map[Stage]Group{
	StageStart:       GroupS,
	StageAdvance:     GroupA,
	StageUtility:     GroupU,
	StageCommunicate: GroupC,
	StageExpert:      GroupE,
}

// Valid reports whether c is one of the ten codes.
func (c Code) Valid() bool {
	for _, code := range AllCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Group returns the parent group, the first letter of the code.
func (c Code) Group() Group {
	if !c.Valid() {
		return ""
	}
	return Group(c[:1])
}

// Pair returns the other code of the same group.
func (c Code) Pair() Code {
	for _, code := range AllCodes {
		if code != c && code.Group() == c.Group() {
			return code
		}
	}
	return ""
}

// Codes returns both codes of the group in canonical order.
func (g Group) Codes() []Code {
	codes := make([]Code, 0, 2)
	for _, code := range AllCodes {
		if code.Group() == g {
			codes = append(codes, code)
		}
	}
	return codes
}

// Group returns the work-type group the stage draws its verbs from.
func (s Stage) Group() Group {
	return stageGroups[s]
}

// Valid reports whether s is a SAUCE stage.
func (s Stage) Valid() bool {
	_, ok := stageGroups[s]
	return ok
}

// ParseCode normalizes and validates a work type code.
func ParseCode(raw string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if !code.Valid() {
		return "", fiterr.Validation("work_type", "unknown work type code %q", raw)
	}
	return code, nil
}

// ParseStage normalizes and validates a stage name.
func ParseStage(raw string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !stage.Valid() {
		return "", fiterr.Validation("stage", "unknown SAUCE stage %q", raw)
	}
	return stage, nil
}

// ParseVerbID extracts the work type encoded as the prefix token of a verb
// identifier such as "SE_investigate" or "ee-03".
func ParseVerbID(id string) (Code, error) {
	trimmed := strings.TrimSpace(id)
	prefix, _, found := strings.Cut(strings.Map(func(r rune) rune {
		if r == '-' || r == ':' {
			return '_'
		}
		return r
	}, trimmed), "_")
	if !found || prefix == "" {
		return "", fiterr.Validation("verb_id", "verb identifier %q has no work type prefix", id)
	}

	code, err := ParseCode(prefix)
	if err != nil {
		return "", fiterr.Validation("verb_id", "verb identifier %q has unknown prefix %q", id, prefix)
	}
	return code, nil
}

package worktype

import (
	"fmt"
	"slices"

	"github.com/spigell/sauce-fit/internal/fiterr"
)

// Info is the descriptive metadata attached to a work type. It carries no
// scoring logic.
type Info struct {
	Code             Code     `json:"code"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Strengths        []string `json:"strengths"`
	DevelopmentAreas []string `json:"development_areas"`
	InterviewFocus   []string `json:"interview_focus"`
}

// Registry is an immutable catalog of work type metadata. Components receive a
// registry at construction so tests can substitute fixtures.
type Registry struct {
	entries map[Code]Info
}

// NewRegistry validates that every code is described exactly once.
func NewRegistry(infos ...Info) (*Registry, error) {
	entries := make(map[Code]Info, len(AllCodes))
	for _, info := range infos {
		if !info.Code.Valid() {
			return nil, fiterr.Validation("registry", "unknown work type code %q", info.Code)
		}
		if _, dup := entries[info.Code]; dup {
			return nil, fiterr.Validation("registry", "work type %s described twice", info.Code)
		}
		entries[info.Code] = cloneInfo(info)
	}

	for _, code := range AllCodes {
		if _, ok := entries[code]; !ok {
			return nil, fiterr.Validation("registry", "work type %s is not described", code)
		}
	}

	return &Registry{entries: entries}, nil
}

// MustRegistry is NewRegistry for static fixtures.
func MustRegistry(infos ...Info) *Registry {
	r, err := NewRegistry(infos...)
	if err != nil {
		panic(fmt.Sprintf("worktype: %v", err))
	}
	return r
}

// Lookup returns a copy of the metadata for code.
func (r *Registry) Lookup(code Code) (Info, bool) {
	info, ok := r.entries[code]
	if !ok {
		return Info{}, false
	}
	return cloneInfo(info), true
}

// Name returns the display name or the raw code when the registry has none.
func (r *Registry) Name(code Code) string {
	if info, ok := r.entries[code]; ok && info.Name != "" {
		return info.Name
	}
	return string(code)
}

// All returns every entry in canonical order.
func (r *Registry) All() []Info {
	out := make([]Info, 0, len(AllCodes))
	for _, code := range AllCodes {
		out = append(out, cloneInfo(r.entries[code]))
	}
	return out
}

func cloneInfo(info Info) Info {
	info.Strengths = slices.Clone(info.Strengths)
	info.DevelopmentAreas = slices.Clone(info.DevelopmentAreas)
	info.InterviewFocus = slices.Clone(info.InterviewFocus)
	return info
}

// DefaultRegistry returns the built-in work type catalog.
func DefaultRegistry() *Registry {
	return MustRegistry(defaultInfos()...)
}

func defaultInfos() []Info {
	return []Info{
		{
			Code:             SE,
			Name:             "Systematic Explorer",
			Description:      "Investigates a problem thoroughly and builds a plan before starting.",
			Strengths:        []string{"thorough research", "structured planning", "risk awareness"},
			DevelopmentAreas: []string{"starting before every fact is known", "tolerating ambiguity"},
			InterviewFocus:   []string{"Describe a time you had to act on incomplete information."},
		},
		{
			Code:             SA,
			Name:             "Steady Analyst",
			Description:      "Works from data, checks assumptions and prefers proven methods.",
			Strengths:        []string{"analytical rigor", "consistency", "quality control"},
			DevelopmentAreas: []string{"decision speed", "experimenting with new approaches"},
			InterviewFocus:   []string{"How do you decide when an analysis is good enough to act on?"},
		},
		{
			Code:             AS,
			Name:             "Adaptive Strategist",
			Description:      "Sets direction in changing conditions and adjusts plans as they evolve.",
			Strengths:        []string{"strategic thinking", "adaptability", "comfort with change"},
			DevelopmentAreas: []string{"follow-through on details", "documenting decisions"},
			InterviewFocus:   []string{"Tell us about a plan you changed midway and why."},
		},
		{
			Code:             AF,
			Name:             "Agile Front-runner",
			Description:      "Moves ahead independently and opens new ground quickly.",
			Strengths:        []string{"initiative", "independence", "drive"},
			DevelopmentAreas: []string{"involving others early", "patience with process"},
			InterviewFocus:   []string{"When did acting alone create problems for your team?"},
		},
		{
			Code:             UM,
			Name:             "Unifying Mediator",
			Description:      "Coordinates people and keeps shared work running smoothly.",
			Strengths:        []string{"coordination", "mediation", "team support"},
			DevelopmentAreas: []string{"making unpopular calls", "working without consensus"},
			InterviewFocus:   []string{"Describe a decision you made that the group disagreed with."},
		},
		{
			Code:             UR,
			Name:             "Utility Refiner",
			Description:      "Improves tools and processes with deliberate, precise craftsmanship.",
			Strengths:        []string{"precision", "craftsmanship", "self-direction"},
			DevelopmentAreas: []string{"delivering under time pressure", "sharing work in progress"},
			InterviewFocus:   []string{"How do you balance polish against a deadline?"},
		},
		{
			Code:             CA,
			Name:             "Collaborative Advocate",
			Description:      "Builds relationships and represents the needs of others.",
			Strengths:        []string{"relationship building", "persuasion", "empathy"},
			DevelopmentAreas: []string{"independent prioritization", "delivering hard feedback"},
			InterviewFocus:   []string{"Give an example of holding a position against a stakeholder."},
		},
		{
			Code:             CH,
			Name:             "Caring Harmonizer",
			Description:      "Creates a supportive atmosphere and keeps the team cohesive.",
			Strengths:        []string{"listening", "conflict prevention", "team morale"},
			DevelopmentAreas: []string{"addressing conflict directly", "self-directed work"},
			InterviewFocus:   []string{"How have you handled a conflict you could not smooth over?"},
		},
		{
			Code:             EE,
			Name:             "Energetic Executor",
			Description:      "Decides fast, acts autonomously and pushes work to completion.",
			Strengths:        []string{"execution speed", "decisiveness", "resilience under uncertainty"},
			DevelopmentAreas: []string{"accuracy on detailed work", "reflection before acting"},
			InterviewFocus:   []string{"Tell us about a fast decision you later had to reverse."},
		},
		{
			Code:             EG,
			Name:             "Expert Goal-driver",
			Description:      "Focuses on results and drives goals with expert judgment.",
			Strengths:        []string{"goal orientation", "expert judgment", "quick decisions"},
			DevelopmentAreas: []string{"attention to relationships", "delegating"},
			InterviewFocus:   []string{"How do you keep people engaged while pushing for results?"},
		},
	}
}

package team

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/worktype"
)

func TestCompareExistingType(t *testing.T) {
	input := Composition{worktype.SE: 3, worktype.AS: 1}

	got, err := Compare(input, worktype.AS)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	want := &Comparison{
		ApplicantType:    worktype.AS,
		ExistingCount:    1,
		TotalMembers:     4,
		Before:           Composition{worktype.SE: 3, worktype.AS: 1},
		After:            Composition{worktype.SE: 3, worktype.AS: 2},
		PercentageBefore: 25,
		PercentageAfter:  40,
		IsNewType:        false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("comparison mismatch (-want +got):\n%s", diff)
	}

	if input[worktype.AS] != 1 || len(input) != 2 {
		t.Fatalf("input composition was modified: %v", input)
	}
}

func TestCompareNewType(t *testing.T) {
	got, err := Compare(Composition{worktype.SE: 2}, worktype.CH)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !got.IsNewType || got.ExistingCount != 0 {
		t.Fatalf("expected new type, got %+v", got)
	}
	if got.PercentageBefore != 0 || got.PercentageAfter != 33 {
		t.Fatalf("expected 0%% -> 33%%, got %d%% -> %d%%", got.PercentageBefore, got.PercentageAfter)
	}
	if _, ok := got.Before[worktype.CH]; ok {
		t.Fatalf("before snapshot must not gain the applicant: %v", got.Before)
	}
}

func TestCompareZeroMembers(t *testing.T) {
	got, err := Compare(Composition{worktype.SE: 0}, worktype.SE)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if got.PercentageBefore != 0 || got.PercentageAfter != 100 {
		t.Fatalf("expected 0%% -> 100%%, got %d%% -> %d%%", got.PercentageBefore, got.PercentageAfter)
	}
}

func TestCompareNoTeam(t *testing.T) {
	for _, composition := range []Composition{nil, {}} {
		got, err := Compare(composition, worktype.SE)
		if err != nil {
			t.Fatalf("compare: %v", err)
		}
		if got != nil {
			t.Fatalf("expected no comparison, got %+v", got)
		}
	}
}

func TestCompareRejectsInvalidInput(t *testing.T) {
	tests := map[string]struct {
		composition Composition
		applicant   worktype.Code
	}{
		"negative count": {composition: Composition{worktype.SE: -1}, applicant: worktype.SE},
		"unknown code":   {composition: Composition{"ZZ": 1}, applicant: worktype.SE},
		"unknown applicant": {
			composition: Composition{worktype.SE: 1},
			applicant:   "ZZ",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Compare(tt.composition, tt.applicant); !errors.Is(err, fiterr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLegacyScore(t *testing.T) {
	existing, err := LegacyScore(Composition{worktype.SE: 3, worktype.AS: 1}, worktype.AS) //nolint:staticcheck // legacy path under test
	if err != nil {
		t.Fatalf("legacy score: %v", err)
	}
	if existing.DiversityScore != 60 {
		t.Fatalf("expected 60, got %d", existing.DiversityScore)
	}

	fresh, err := LegacyScore(Composition{worktype.SE: 3}, worktype.CH) //nolint:staticcheck // legacy path under test
	if err != nil {
		t.Fatalf("legacy score: %v", err)
	}
	if fresh.DiversityScore != 100 {
		t.Fatalf("expected 100, got %d", fresh.DiversityScore)
	}

	none, err := LegacyScore(nil, worktype.CH) //nolint:staticcheck // legacy path under test
	if err != nil || none != nil {
		t.Fatalf("expected nil result, got %+v, %v", none, err)
	}
}

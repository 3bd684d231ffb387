package worktype

import (
	"errors"
	"testing"

	"github.com/spigell/sauce-fit/internal/fiterr"
)

func TestDefaultRegistryCoversAllCodes(t *testing.T) {
	registry := DefaultRegistry()

	all := registry.All()
	if len(all) != len(AllCodes) {
		t.Fatalf("expected %d entries, got %d", len(AllCodes), len(all))
	}

	for i, info := range all {
		if info.Code != AllCodes[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, AllCodes[i], info.Code)
		}
		if info.Name == "" || len(info.Strengths) == 0 || len(info.InterviewFocus) == 0 {
			t.Fatalf("entry %s is missing metadata", info.Code)
		}
	}
}

func TestNewRegistryRejectsGaps(t *testing.T) {
	infos := defaultInfos()

	if _, err := NewRegistry(infos[1:]...); !errors.Is(err, fiterr.ErrValidation) {
		t.Fatalf("expected validation error for missing code, got %v", err)
	}

	if _, err := NewRegistry(append(infos, infos[0])...); !errors.Is(err, fiterr.ErrValidation) {
		t.Fatalf("expected validation error for duplicate code, got %v", err)
	}

	if _, err := NewRegistry(append(infos, Info{Code: "ZZ"})...); !errors.Is(err, fiterr.ErrValidation) {
		t.Fatalf("expected validation error for unknown code, got %v", err)
	}
}

func TestRegistryLookupReturnsCopies(t *testing.T) {
	registry := DefaultRegistry()

	info, ok := registry.Lookup(SE)
	if !ok {
		t.Fatalf("expected SE to be present")
	}
	info.Strengths[0] = "mutated"

	again, _ := registry.Lookup(SE)
	if again.Strengths[0] == "mutated" {
		t.Fatalf("registry must not expose internal slices")
	}

	if registry.Name(EE) != "Energetic Executor" {
		t.Fatalf("unexpected name %q", registry.Name(EE))
	}
	if registry.Name("ZZ") != "ZZ" {
		t.Fatalf("expected raw code fallback")
	}
}

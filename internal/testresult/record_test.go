package testresult

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/jobfit"
	"github.com/spigell/sauce-fit/internal/report"
	"github.com/spigell/sauce-fit/internal/scoring"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const validRecord = `{
  "candidate_id": "c-1",
  "candidate_name": "Alex",
  "statements": {
    "SE": [5, 4], "SA": [3, 3], "AS": [2, 2], "AF": [1, 2], "UM": [4, 4],
    "UR": [5, 5], "CA": [3, 2], "CH": [2, 3], "EE": [4, 3], "EG": [1, 1]
  },
  "selections": {
    "start": ["SE_plan", "SA_check"],
    "advance": ["AS_adapt"],
    "utility": ["UR_tune"],
    "communicate": ["CA_listen"],
    "expert": ["EG_lead"]
  },
  "team": {"SE": 2, "UR": 1}
}`

func TestParseValidRecord(t *testing.T) {
	record, err := Parse([]byte(validRecord))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if record.CandidateID != "c-1" || record.DisplayName() != "Alex" {
		t.Fatalf("unexpected identity: %+v", record)
	}
	if record.Team[worktype.SE] != 2 || record.Team[worktype.UR] != 1 {
		t.Fatalf("unexpected team: %v", record.Team)
	}

	wantSelections := scoring.Selections{
		worktype.StageStart:       {"SE_plan", "SA_check"},
		worktype.StageAdvance:     {"AS_adapt"},
		worktype.StageUtility:     {"UR_tune"},
		worktype.StageCommunicate: {"CA_listen"},
		worktype.StageExpert:      {"EG_lead"},
	}
	if diff := cmp.Diff(wantSelections, record.VerbSelections()); diff != "" {
		t.Fatalf("selections mismatch (-want +got):\n%s", diff)
	}

	answers := record.Answers()
	if diff := cmp.Diff([]int{5, 4}, answers[worktype.SE]); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}

	answers[worktype.SE][0] = 1
	if record.Statements[worktype.SE][0] != 5 {
		t.Fatalf("Answers must return a copy")
	}

	if _, err := scoring.Aggregate(record.Answers(), record.VerbSelections()); err != nil {
		t.Fatalf("record should aggregate cleanly: %v", err)
	}
}

func TestDisplayNameFallsBackToID(t *testing.T) {
	data := strings.Replace(validRecord, `"candidate_name": "Alex",`, "", 1)

	record, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if record.DisplayName() != "c-1" {
		t.Fatalf("expected id fallback, got %q", record.DisplayName())
	}
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := map[string]struct {
		input string
		field string
	}{
		"missing candidate id": {
			input: `{"statements": {}, "selections": {}}`,
			field: "candidate_id",
		},
		"answer out of range": {
			input: `{"candidate_id": "c", "statements": {"SE": [6]}, "selections": {}}`,
			field: "statements.SE.0",
		},
		"unknown work type": {
			input: `{"candidate_id": "c", "statements": {"ZZ": [1]}, "selections": {}}`,
			field: "statements",
		},
		"unknown stage": {
			input: `{"candidate_id": "c", "statements": {}, "selections": {"later": ["SE_x"]}}`,
			field: "selections",
		},
		"negative team count": {
			input: `{"candidate_id": "c", "statements": {}, "selections": {}, "team": {"SE": -1}}`,
			field: "team.SE",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, fiterr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T", err)
			}
			if !strings.Contains(schemaErr.Error(), tt.field) {
				t.Fatalf("expected error to mention %q, got %q", tt.field, schemaErr.Error())
			}
		})
	}
}

func evaluateRecord(t *testing.T, data string) (*report.Report, error) {
	t.Helper()

	record, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	builder := report.NewBuilder(worktype.DefaultRegistry(), jobfit.DefaultCatalog(), nil)
	return builder.Evaluate(report.Input{
		CandidateID: record.CandidateID,
		Answers:     record.Answers(),
		Selections:  record.VerbSelections(),
	})
}

func TestEmptyStatementGroupIsInsufficientData(t *testing.T) {
	data := strings.Replace(validRecord, `"EG": [1, 1]`, `"EG": []`, 1)

	_, err := evaluateRecord(t, data)
	if !errors.Is(err, fiterr.ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
	if errors.Is(err, fiterr.ErrValidation) {
		t.Fatalf("empty group must not be reported as a validation error: %v", err)
	}
}

func TestEmptyStageReportsNoData(t *testing.T) {
	data := strings.Replace(validRecord, `"start": ["SE_plan", "SA_check"]`, `"start": []`, 1)

	rep, err := evaluateRecord(t, data)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	for _, insight := range rep.Profile.StageInsights {
		if insight.Stage != worktype.StageStart {
			if !insight.HasData {
				t.Fatalf("stage %s should have data", insight.Stage)
			}
			continue
		}
		if insight.HasData || !strings.HasSuffix(insight.Text, "no data") {
			t.Fatalf("expected start stage without data, got %+v", insight)
		}
	}
}

func TestNoSelectionsAtAllIsInsufficientData(t *testing.T) {
	data := `{
  "candidate_id": "c-2",
  "statements": {
    "SE": [3], "SA": [3], "AS": [3], "AF": [3], "UM": [3],
    "UR": [3], "CA": [3], "CH": [3], "EE": [3], "EG": [3]
  },
  "selections": {"start": [], "advance": [], "utility": [], "communicate": [], "expert": []}
}`

	if _, err := evaluateRecord(t, data); !errors.Is(err, fiterr.ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"candidate_id":`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	if err := os.WriteFile(path, []byte(validRecord), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	record, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.CandidateID != "c-1" {
		t.Fatalf("unexpected candidate id %q", record.CandidateID)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

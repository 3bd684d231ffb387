// Package testresult loads candidate test-result records from JSON files.
package testresult

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/sauce-fit/internal/fiterr"
	"github.com/spigell/sauce-fit/internal/scoring"
	"github.com/spigell/sauce-fit/internal/team"
	"github.com/spigell/sauce-fit/internal/worktype"
)

//go:embed record.schema.json
var recordSchema string

// Record is one candidate's raw test answers.
type Record struct {
	CandidateID   string                      `json:"candidate_id"`
	CandidateName string                      `json:"candidate_name,omitempty"`
	Statements    map[worktype.Code][]int     `json:"statements"`
	Selections    map[worktype.Stage][]string `json:"selections"`
	Team          team.Composition            `json:"team,omitempty"`
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation found in a record.
type SchemaError struct {
	Source string
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s does not match the test result schema: %s", e.Source, strings.Join(parts, "; "))
}

func (e *SchemaError) Is(target error) bool { return target == fiterr.ErrValidation }

// Load reads and validates a record file.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test result %s: %w", path, err)
	}

	record, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Parse validates data against the record schema and decodes it.
func Parse(data []byte) (*Record, error) {
	return parse("(input)", data)
}

func parse(source string, data []byte) (*Record, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(recordSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}

	if !result.Valid() {
		schemaErr := &SchemaError{
			Source: source,
			Errors: make([]FieldError, 0, len(result.Errors())),
		}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, schemaErr
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return &record, nil
}

// Answers converts the statement answers into aggregator input.
func (r *Record) Answers() scoring.Answers {
	out := make(scoring.Answers, len(r.Statements))
	for code, values := range r.Statements {
		out[code] = append([]int(nil), values...)
	}
	return out
}

// VerbSelections converts the stage selections into aggregator input.
func (r *Record) VerbSelections() scoring.Selections {
	out := make(scoring.Selections, len(r.Selections))
	for stage, ids := range r.Selections {
		out[stage] = append([]string(nil), ids...)
	}
	return out
}

// DisplayName prefers the candidate name and falls back to the id.
func (r *Record) DisplayName() string {
	if r.CandidateName != "" {
		return r.CandidateName
	}
	return r.CandidateID
}

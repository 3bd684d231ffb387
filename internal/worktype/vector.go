package worktype

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/spigell/sauce-fit/internal/fiterr"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Score is one work type's value inside a Vector.
type Score struct {
	Code  Code    `json:"code"`
	Value float64 `json:"score"`
}

// Vector is a validated score per work type: every code exactly once, every
// value finite and within [0,100]. Entry order is the iteration order used for
// stable tie-breaks.
type Vector struct {
	entries []Score
}

// NewVector builds a vector in canonical code order.
func NewVector(scores map[Code]float64) (Vector, error) {
	for code := range scores {
		if !code.Valid() {
			return Vector{}, fiterr.Validation("score_vector", "unknown work type code %q", code)
		}
	}

	entries := make([]Score, 0, len(AllCodes))
	for _, code := range AllCodes {
		value, ok := scores[code]
		if !ok {
			return Vector{}, fiterr.Validation("score_vector", "missing work type %s", code)
		}
		entries = append(entries, Score{Code: code, Value: value})
	}

	return NewVectorFromEntries(entries)
}

// NewVectorFromEntries builds a vector preserving the caller's entry order.
func NewVectorFromEntries(entries []Score) (Vector, error) {
	seen := make(map[Code]bool, len(entries))
	for _, entry := range entries {
		if !entry.Code.Valid() {
			return Vector{}, fiterr.Validation("score_vector", "unknown work type code %q", entry.Code)
		}
		if seen[entry.Code] {
			return Vector{}, fiterr.Validation("score_vector", "duplicate work type %s", entry.Code)
		}
		seen[entry.Code] = true

		if math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
			return Vector{}, fiterr.Validation("score_vector", "score for %s is not finite", entry.Code)
		}
		if entry.Value < MinScore || entry.Value > MaxScore {
			return Vector{}, fiterr.Validation("score_vector", "score for %s is %v, outside [0,100]", entry.Code, entry.Value)
		}
	}

	for _, code := range AllCodes {
		if !seen[code] {
			return Vector{}, fiterr.Validation("score_vector", "missing work type %s", code)
		}
	}

	return Vector{entries: slices.Clone(entries)}, nil
}

// Get returns the score for code.
func (v Vector) Get(code Code) (float64, bool) {
	for _, entry := range v.entries {
		if entry.Code == code {
			return entry.Value, true
		}
	}
	return 0, false
}

// Entries returns a copy of the entries in vector order.
func (v Vector) Entries() []Score {
	return slices.Clone(v.entries)
}

// Map returns a copy of the scores keyed by code.
func (v Vector) Map() map[Code]float64 {
	out := make(map[Code]float64, len(v.entries))
	for _, entry := range v.entries {
		out[entry.Code] = entry.Value
	}
	return out
}

// IsZero reports whether v was never constructed.
func (v Vector) IsZero() bool {
	return len(v.entries) == 0
}

// Distribution ranks the vector descending by score. Ties keep vector order.
func (v Vector) Distribution() Distribution {
	sorted := slices.Clone(v.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	dist := make(Distribution, 0, len(sorted))
	for i, entry := range sorted {
		dist = append(dist, DistributionEntry{Code: entry.Code, Score: entry.Value, Rank: i + 1})
	}
	return dist
}

// MarshalJSON writes a {code: score} object with keys in vector order; an
// unconstructed vector is null.
func (v Vector) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range v.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(entry.Code))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encode score for %s: %w", entry.Code, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the key order of the document as the vector order.
func (v *Vector) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*v = Vector{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("decode score vector: expected object")
	}

	var entries []Score
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode score vector: %w", err)
		}
		key, _ := tok.(string)

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode score vector %s: %w", key, err)
		}
		entries = append(entries, Score{Code: Code(key), Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode score vector: %w", err)
	}

	parsed, err := NewVectorFromEntries(entries)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// DistributionEntry is a ranked score.
type DistributionEntry struct {
	Code  Code    `json:"code"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Distribution is a vector sorted descending with 1-based ranks.
type Distribution []DistributionEntry

// Lookup returns the score for code.
func (d Distribution) Lookup(code Code) (float64, bool) {
	for _, entry := range d {
		if entry.Code == code {
			return entry.Score, true
		}
	}
	return 0, false
}

// Top returns up to n leading entries.
func (d Distribution) Top(n int) Distribution {
	n = min(max(n, 0), len(d))
	return slices.Clone(d[:n])
}

// Bottom returns up to n trailing entries, still in rank order.
func (d Distribution) Bottom(n int) Distribution {
	n = min(max(n, 0), len(d))
	return slices.Clone(d[len(d)-n:])
}

// Codes lists the codes in rank order.
func (d Distribution) Codes() []Code {
	codes := make([]Code, 0, len(d))
	for _, entry := range d {
		codes = append(codes, entry.Code)
	}
	return codes
}

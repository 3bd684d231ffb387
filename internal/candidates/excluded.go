package candidates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

type ExcludedCandidates struct {
	Items []*ExcludedCandidate `json:"items"`
}

type ExcludedCandidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	JobID      string    `json:"job_id,omitempty"`
	FitLevel   string    `json:"fit_level,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ToExcluded snapshots the current candidates for the exclude file.
func (c *Candidates) ToExcluded() *ExcludedCandidates {
	now := time.Now().UTC()
	excluded := &ExcludedCandidates{}
	for _, item := range c.Items {
		entry := &ExcludedCandidate{ID: item.ID, Name: item.Name, ExcludedAt: now}
		if item.Report != nil && item.Report.JobFit != nil {
			entry.JobID = item.Report.JobFit.JobID
			entry.FitLevel = string(item.Report.JobFit.FitLevel)
		}
		excluded.Items = append(excluded.Items, entry)
	}
	return excluded
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty list.
func LoadExcluded(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ExcludedCandidates{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode exclude file %s: %w", path, err)
	}
	return &excluded, nil
}

// Append adds entries whose id is not already listed.
func (e *ExcludedCandidates) Append(other *ExcludedCandidates) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range other.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedCandidates) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

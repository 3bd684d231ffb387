// Package candidates holds the set of evaluated candidates a screening run
// works on.
package candidates

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spigell/sauce-fit/internal/report"
)

const noJobKey = "no job"

type Candidates struct {
	Items []*Candidate `json:"items"`
}

// Candidate is one evaluated test result. A failed evaluation keeps its error
// and has no report.
type Candidate struct {
	ID     string         `json:"id"`
	Name   string         `json:"name,omitempty"`
	Report *report.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
	AI     *AIExplanation `json:"ai,omitempty"`
}

// AIExplanation is the narrative attached by the AI step, or the error it hit.
type AIExplanation struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
}

// FromResults wraps batch results, keeping their order.
func FromResults(results []report.Result) *Candidates {
	c := &Candidates{Items: make([]*Candidate, 0, len(results))}
	for _, r := range results {
		item := &Candidate{
			ID:     r.Input.CandidateID,
			Name:   r.Input.CandidateName,
			Report: r.Report,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		c.Items = append(c.Items, item)
	}
	return c
}

// Evaluated reports whether the candidate has a report.
func (c *Candidate) Evaluated() bool {
	return c.Report != nil && c.Error == ""
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, item := range c.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Exclude removes candidates by id and returns the ids it removed.
func (c *Candidates) Exclude(ids []string) []string {
	return c.ExcludeFunc(func(item *Candidate) bool { return slices.Contains(ids, item.ID) })
}

// ExcludeFunc removes every candidate drop returns true for, keeping the order
// of the rest.
func (c *Candidates) ExcludeFunc(drop func(*Candidate) bool) []string {
	var excluded []string
	for idx := len(c.Items) - 1; idx >= 0; idx-- {
		if drop(c.Items[idx]) {
			excluded = append(excluded, c.Items[idx].ID)
			c.RemoveByIndex(idx)
		}
	}
	slices.Reverse(excluded)
	return excluded
}

// RemoveByIndex removes a candidate and keeps the order of the rest.
func (c *Candidates) RemoveByIndex(idx int) {
	c.Items = slices.Delete(c.Items, idx, idx+1)
}

// ReportByFitLevel groups a short summary of every candidate by fit level.
func (c *Candidates) ReportByFitLevel() map[string][]map[string]string {
	out := make(map[string][]map[string]string)
	for _, item := range c.Items {
		entry := map[string]string{
			"id":   item.ID,
			"name": item.Name,
		}

		key := noJobKey
		switch {
		case item.Error != "":
			key = "failed"
			entry["error"] = item.Error
		case item.Report != nil:
			entry["primary_type"] = string(item.Report.Scores.Primary)
			if item.Report.JobFit != nil {
				key = string(item.Report.JobFit.FitLevel)
				entry["job"] = item.Report.JobFit.JobID
				entry["overall_score"] = strconv.Itoa(item.Report.JobFit.OverallScore)
				entry["recommendation"] = string(item.Report.JobFit.HiringRecommendation.Level)
			}
		}

		if item.AI != nil {
			if item.AI.Error != "" {
				entry["ai_error"] = item.AI.Error
			} else {
				entry["ai_explanation"] = item.AI.Text
			}
		}

		out[key] = append(out[key], entry)
	}
	return out
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	return file.Name(), nil
}

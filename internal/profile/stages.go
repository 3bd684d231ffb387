package profile

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/sauce-fit/internal/scoring"
	"github.com/spigell/sauce-fit/internal/worktype"
)

const noDataText = "no data"

// TypeCount is how often a type was picked within one stage.
type TypeCount struct {
	Code  worktype.Code `json:"code"`
	Count int           `json:"count"`
}

// StageInsight summarises the picks of one SAUCE stage.
type StageInsight struct {
	Stage    worktype.Stage  `json:"stage"`
	HasData  bool            `json:"has_data"`
	Total    int             `json:"total"`
	Dominant []worktype.Code `json:"dominant"`
	Counts   []TypeCount     `json:"counts"`
	Text     string          `json:"text"`
}

// StageInsights tallies selections per stage, always returning one insight per
// stage in canonical order.
func StageInsights(selections scoring.Selections) ([]StageInsight, error) {
	title := cases.Title(language.English)
	insights := make([]StageInsight, 0, len(worktype.AllStages))

	for _, stage := range worktype.AllStages {
		insight := StageInsight{Stage: stage, Dominant: []worktype.Code{}, Counts: []TypeCount{}}
		label := title.String(string(stage))

		ids := selections[stage]
		if len(ids) == 0 {
			insight.Text = fmt.Sprintf("%s stage: %s", label, noDataText)
			insights = append(insights, insight)
			continue
		}

		tally := make(map[worktype.Code]int)
		for _, id := range ids {
			code, err := worktype.ParseVerbID(id)
			if err != nil {
				return nil, err
			}
			tally[code]++
		}

		for _, code := range worktype.AllCodes {
			if tally[code] > 0 {
				insight.Counts = append(insight.Counts, TypeCount{Code: code, Count: tally[code]})
			}
		}
		sort.SliceStable(insight.Counts, func(i, j int) bool {
			return insight.Counts[i].Count > insight.Counts[j].Count
		})

		top := insight.Counts[0].Count
		names := make([]string, 0, len(insight.Counts))
		for _, tc := range insight.Counts {
			if tc.Count != top {
				break
			}
			insight.Dominant = append(insight.Dominant, tc.Code)
			names = append(names, string(tc.Code))
		}

		insight.HasData = true
		insight.Total = len(ids)
		insight.Text = fmt.Sprintf("%s stage: %s (%d of %d selections)",
			label, strings.Join(names, ", "), top, len(ids))

		insights = append(insights, insight)
	}

	return insights, nil
}

package jobfit

import (
	"sort"

	"github.com/spigell/sauce-fit/internal/worktype"
)

// The strongest preferred type dominates; the rest add context.
const (
	simpleTopWeight  = 0.6
	simpleRestWeight = 0.4
)

// SimpleScore is the legacy single-number fit against a short list of
// preferred work types.
//
// Deprecated: use Scorer.Analyze with a JobProfile. Kept for call sites that
// only know preferred types.
func SimpleScore(dist worktype.Distribution, preferred []worktype.Code) float64 {
	if len(dist) == 0 {
		return 0
	}

	scores := make([]float64, 0, len(preferred))
	for _, code := range preferred {
		if score, ok := dist.Lookup(code); ok {
			scores = append(scores, score)
		}
	}

	switch len(scores) {
	case 0:
		return dist[0].Score
	case 1:
		return scores[0]
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	rest := 0.0
	for _, score := range scores[1:] {
		rest += score
	}
	rest /= float64(len(scores) - 1)

	return scores[0]*simpleTopWeight + rest*simpleRestWeight
}

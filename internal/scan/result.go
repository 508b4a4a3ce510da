// Package scan runs the ranking pipeline over indicator snapshots: gate,
// rank, aggregate, scale, classify. One call covers one snapshot group; the
// trend driver repeats the pipeline over historical groups in isolation.
package scan

import (
	"sort"
	"time"

	"github.com/rkotak/sectorscan/internal/gates"
	"github.com/rkotak/sectorscan/internal/scoring"
)

// Result is one entity's outcome for one snapshot. Excluded entities carry
// reasons instead of ranks and scores.
type Result struct {
	Entity           string                         `json:"entity"`
	Symbol           string                         `json:"symbol,omitempty"`
	Timestamp        time.Time                      `json:"timestamp"`
	IndicatorRanks   map[scoring.Indicator]float64  `json:"indicator_ranks,omitempty"`
	AggregateRank    float64                        `json:"aggregate_rank,omitempty"`
	Score            float64                        `json:"score,omitempty"`
	Rank             int                            `json:"rank,omitempty"`
	Leader           bool                           `json:"leader,omitempty"`
	Status           gates.Status                   `json:"status,omitempty"`
	Excluded         bool                           `json:"excluded,omitempty"`
	ExclusionReasons []string                       `json:"exclusion_reasons,omitempty"`
}

// GroupResult is the full outcome of scoring one snapshot group. Results are
// ordered best first; Excluded lists every entity that was gated out or had
// incomplete data, tagged with reasons.
type GroupResult struct {
	RunID     string    `json:"run_id"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
	Results   []Result  `json:"results"`
	Excluded  []Result  `json:"excluded,omitempty"`
}

// TopN returns up to k of the best-scoring entities.
func (g *GroupResult) TopN(k int) []Result {
	if k > len(g.Results) {
		k = len(g.Results)
	}
	top := make([]Result, k)
	copy(top, g.Results[:k])
	return top
}

// Lookup finds an entity's result, scored or excluded.
func (g *GroupResult) Lookup(entity string) (Result, bool) {
	for _, r := range g.Results {
		if r.Entity == entity {
			return r, true
		}
	}
	for _, r := range g.Excluded {
		if r.Entity == entity {
			return r, true
		}
	}
	return Result{}, false
}

// orderResults sorts scored results best first (score descending, entity
// ascending for determinism) and assigns 1-based display ranks where entities
// with equal scores share the lowest position of their run.
func orderResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entity < results[j].Entity
	})
	for i := range results {
		if i > 0 && results[i].Score == results[i-1].Score {
			results[i].Rank = results[i-1].Rank
			continue
		}
		results[i].Rank = i + 1
	}
}

// percentile returns the linearly interpolated p-th percentile of the given
// values, matching the quantile convention the screener's leader threshold
// was tuned with.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

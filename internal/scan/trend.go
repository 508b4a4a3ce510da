package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rkotak/sectorscan/internal/scoring"
)

// TrendPoint is one slot in an entity's historical series: either a concrete
// scored result or an explicit not-applicable marker with the reason.
type TrendPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Applicable bool      `json:"applicable"`
	Result     *Result   `json:"result,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// TrendSeries maps each entity to its per-snapshot points, oldest first.
type TrendSeries map[string][]TrendPoint

// TopSnapshot records the best-scoring entities of one historical snapshot.
type TopSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Top       []Result  `json:"top"`
}

// Trend re-runs the full pipeline independently on each historical snapshot
// group and assembles a per-entity series. Snapshots share no state, so they
// are evaluated concurrently; presentation order is restored by sorting on
// timestamp. Nothing is carried forward between snapshots: an entity that is
// ineligible or incomplete at one snapshot gets a not-applicable marker there
// no matter what its neighbours look like.
func (a *Analyzer) Trend(ctx context.Context, history [][]scoring.Snapshot, mode scoring.Mode) (TrendSeries, error) {
	groups, err := a.scanHistory(ctx, history, mode)
	if err != nil {
		return nil, err
	}

	series := make(TrendSeries)
	for _, snaps := range history {
		for _, snap := range snaps {
			if _, ok := series[snap.Entity]; !ok {
				series[snap.Entity] = make([]TrendPoint, 0, len(history))
			}
		}
	}

	for _, group := range groups {
		for entity := range series {
			point := TrendPoint{Timestamp: group.Timestamp}
			if result, ok := group.Lookup(entity); ok {
				if result.Excluded {
					point.Reason = "ineligible"
					if len(result.ExclusionReasons) > 0 {
						point.Reason = result.ExclusionReasons[0]
					}
				} else {
					r := result
					point.Applicable = true
					point.Result = &r
				}
			} else {
				point.Reason = "absent from snapshot"
			}
			series[entity] = append(series[entity], point)
		}
	}

	return series, nil
}

// HistoricalTop extracts, per historical snapshot, the top-k entities by
// score, oldest snapshot first.
func (a *Analyzer) HistoricalTop(ctx context.Context, history [][]scoring.Snapshot, mode scoring.Mode, k int) ([]TopSnapshot, error) {
	groups, err := a.scanHistory(ctx, history, mode)
	if err != nil {
		return nil, err
	}

	top := make([]TopSnapshot, 0, len(groups))
	for _, group := range groups {
		top = append(top, TopSnapshot{Timestamp: group.Timestamp, Top: group.TopN(k)})
	}
	return top, nil
}

// scanHistory evaluates every snapshot group concurrently and returns the
// results ordered oldest to newest.
func (a *Analyzer) scanHistory(ctx context.Context, history [][]scoring.Snapshot, mode scoring.Mode) ([]*GroupResult, error) {
	groups := make([]*GroupResult, len(history))
	errs := make([]error, len(history))

	var wg sync.WaitGroup
	for i := range history {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			groups[i], errs[i] = a.scanGroup(mode, history[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Timestamp.Before(groups[j].Timestamp)
	})
	return groups, nil
}

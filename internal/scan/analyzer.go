package scan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rkotak/sectorscan/internal/gates"
	"github.com/rkotak/sectorscan/internal/metrics"
	"github.com/rkotak/sectorscan/internal/scoring"
)

// Config carries the per-analyzer scoring configuration. Zero values fall
// back to the stock NSE screener defaults.
type Config struct {
	MomentumWeights  scoring.WeightMap
	ReversalWeights  scoring.WeightMap
	ReversalGate     gates.RuleSet
	ConfirmRules     gates.RuleSet
	LeaderPercentile float64
}

// Analyzer scores snapshot groups. It holds no state between calls beyond
// its immutable configuration, so a single instance is safe for concurrent
// use across snapshots.
type Analyzer struct {
	momentum   scoring.WeightMap
	reversal   scoring.WeightMap
	gate       gates.RuleSet
	classifier *gates.Classifier
	leaderPct  float64
	collector  *metrics.Collector
}

// NewAnalyzer builds an analyzer; collector may be nil when metrics are not
// wired (library use, tests).
func NewAnalyzer(cfg Config, collector *metrics.Collector) *Analyzer {
	a := &Analyzer{
		momentum:   cfg.MomentumWeights,
		reversal:   cfg.ReversalWeights,
		gate:       cfg.ReversalGate,
		classifier: gates.NewClassifier(cfg.ConfirmRules),
		leaderPct:  cfg.LeaderPercentile,
		collector:  collector,
	}
	if a.momentum.Len() == 0 {
		a.momentum = scoring.DefaultMomentumWeights()
	}
	if a.reversal.Len() == 0 {
		a.reversal = scoring.DefaultReversalWeights()
	}
	if len(a.gate) == 0 {
		a.gate = gates.DefaultReversalGate()
	}
	if a.leaderPct <= 0 {
		a.leaderPct = 70
	}
	return a
}

// Momentum scores every entity with complete indicator data against its
// peers. There is no eligibility gate and no status dimension.
func (a *Analyzer) Momentum(snaps []scoring.Snapshot) (*GroupResult, error) {
	return a.scanGroup(scoring.Momentum, snaps)
}

// Reversal gates entities on the eligibility rules first, ranks only the
// survivors, and tiers them into buy-divergence or watch status.
func (a *Analyzer) Reversal(snaps []scoring.Snapshot) (*GroupResult, error) {
	return a.scanGroup(scoring.Reversal, snaps)
}

func (a *Analyzer) weights(mode scoring.Mode) scoring.WeightMap {
	if mode == scoring.Reversal {
		return a.reversal
	}
	return a.momentum
}

func (a *Analyzer) scanGroup(mode scoring.Mode, snaps []scoring.Snapshot) (*GroupResult, error) {
	start := time.Now()

	group := &GroupResult{
		RunID: uuid.New().String(),
		Mode:  mode.String(),
	}
	if len(snaps) == 0 {
		return group, nil
	}
	group.Timestamp = snaps[0].Timestamp

	weights := a.weights(mode)
	if err := checkRankable(weights, snaps); err != nil {
		return nil, fmt.Errorf("%s scan: %w", mode, err)
	}

	eligible := make([]scoring.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		if excluded, ok := a.exclude(mode, weights, snap); ok {
			group.Excluded = append(group.Excluded, excluded)
			continue
		}
		eligible = append(eligible, snap)
	}

	if len(eligible) == 0 {
		// Not an error: an empty eligible set is a legitimate outcome of the
		// gate, reported as an empty result set.
		log.Debug().Str("mode", mode.String()).Int("entities", len(snaps)).
			Msg("No eligible entities in snapshot")
		a.observe(mode, start, 0)
		return group, nil
	}

	ranks := make(map[string]map[scoring.Indicator]float64, len(eligible))
	for _, snap := range eligible {
		ranks[snap.Entity] = make(map[scoring.Indicator]float64, weights.Len())
	}
	for _, ind := range weights.Indicators() {
		values := make(map[string]float64, len(eligible))
		for _, snap := range eligible {
			// Eligibility guaranteed completeness for weighted indicators.
			v, _ := snap.Value(ind)
			values[snap.Entity] = v
		}
		for entity, r := range scoring.FractionalRanks(values, scoring.DirectionFor(mode, ind)) {
			ranks[entity][ind] = r
		}
	}

	aggregate := make(map[string]float64, len(eligible))
	for _, snap := range eligible {
		agg, err := scoring.AggregateRank(ranks[snap.Entity], weights)
		if err != nil {
			return nil, fmt.Errorf("%s scan: aggregate %s: %w", mode, snap.Entity, err)
		}
		aggregate[snap.Entity] = agg
	}

	scores := scoring.ScaleScores(aggregate)

	for _, snap := range eligible {
		result := Result{
			Entity:         snap.Entity,
			Symbol:         snap.Symbol,
			Timestamp:      snap.Timestamp,
			IndicatorRanks: ranks[snap.Entity],
			AggregateRank:  aggregate[snap.Entity],
			Score:          scores[snap.Entity],
		}
		if mode == scoring.Reversal {
			result.Status = a.classifier.Classify(snap)
		}
		group.Results = append(group.Results, result)
	}

	orderResults(group.Results)
	if mode == scoring.Momentum {
		a.flagLeaders(group.Results)
	}

	a.observe(mode, start, len(group.Results))
	log.Debug().Str("mode", mode.String()).
		Int("ranked", len(group.Results)).Int("excluded", len(group.Excluded)).
		Msg("Snapshot scan completed")

	return group, nil
}

// exclude decides whether a snapshot is gated out or lacks data for the
// weighted indicators, and builds the tagged exclusion record if so.
func (a *Analyzer) exclude(mode scoring.Mode, weights scoring.WeightMap, snap scoring.Snapshot) (Result, bool) {
	var reasons []string

	if mode == scoring.Reversal {
		if ok, checks := a.gate.Evaluate(snap); !ok {
			for _, check := range checks {
				if !check.Passed {
					reasons = append(reasons, check.Reason)
				}
			}
			a.observeExclusion(mode, "gate")
			return a.excludedResult(snap, reasons), true
		}
	}

	if missing := snap.Missing(weights.Indicators()); len(missing) > 0 {
		for _, ind := range missing {
			reasons = append(reasons, fmt.Sprintf("missing %s value", ind))
		}
		a.observeExclusion(mode, "missing_data")
		return a.excludedResult(snap, reasons), true
	}

	return Result{}, false
}

func (a *Analyzer) excludedResult(snap scoring.Snapshot, reasons []string) Result {
	return Result{
		Entity:           snap.Entity,
		Symbol:           snap.Symbol,
		Timestamp:        snap.Timestamp,
		Status:           gates.StatusExcluded,
		Excluded:         true,
		ExclusionReasons: reasons,
	}
}

// flagLeaders marks entities at or above the momentum leader percentile.
func (a *Analyzer) flagLeaders(results []Result) {
	if len(results) == 0 {
		return
	}
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	threshold := percentile(scores, a.leaderPct)
	for i := range results {
		results[i].Leader = results[i].Score >= threshold
	}
}

func (a *Analyzer) observe(mode scoring.Mode, start time.Time, eligible int) {
	if a.collector == nil {
		return
	}
	a.collector.ObserveScan(mode.String(), time.Since(start), eligible)
}

func (a *Analyzer) observeExclusion(mode scoring.Mode, reason string) {
	if a.collector == nil {
		return
	}
	a.collector.ObserveExclusion(mode.String(), reason)
}

// checkRankable rejects weight maps that cannot rank anything in this group:
// none of the weighted indicators appears in any snapshot. That is a caller
// configuration mistake, distinct from per-entity missing data.
func checkRankable(weights scoring.WeightMap, snaps []scoring.Snapshot) error {
	for _, ind := range weights.Indicators() {
		for _, snap := range snaps {
			if _, ok := snap.Value(ind); ok {
				return nil
			}
		}
	}
	names := make([]string, 0, weights.Len())
	for _, ind := range weights.Indicators() {
		names = append(names, string(ind))
	}
	return fmt.Errorf("indicators %s absent from all snapshots: %w",
		strings.Join(names, ", "), scoring.ErrNothingRanked)
}

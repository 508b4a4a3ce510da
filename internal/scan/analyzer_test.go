package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkotak/sectorscan/internal/gates"
	"github.com/rkotak/sectorscan/internal/scoring"
)

var testStamp = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func entitySnap(entity string, values map[scoring.Indicator]float64) scoring.Snapshot {
	return scoring.Snapshot{Entity: entity, Timestamp: testStamp, Values: values}
}

func rsWeights(t *testing.T) scoring.WeightMap {
	t.Helper()
	w, err := scoring.NewWeightMap(map[scoring.Indicator]float64{scoring.RSRating: 1.0})
	require.NoError(t, err)
	return w
}

func rsiWeights(t *testing.T) scoring.WeightMap {
	t.Helper()
	w, err := scoring.NewWeightMap(map[scoring.Indicator]float64{scoring.RSI: 1.0})
	require.NoError(t, err)
	return w
}

func TestMomentum_FractionalTieScoring(t *testing.T) {
	// Four entities tied on RS rating occupy positions 1-4 (rank 2.5 each);
	// since 2.5 is also the group minimum they all scale to 10.0 and the
	// straggler at rank 5.0 takes 1.0.
	analyzer := NewAnalyzer(Config{MomentumWeights: rsWeights(t)}, nil)

	group, err := analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{scoring.RSRating: 10.0}),
		entitySnap("Pharma", map[scoring.Indicator]float64{scoring.RSRating: 10.0}),
		entitySnap("Auto", map[scoring.Indicator]float64{scoring.RSRating: 10.0}),
		entitySnap("Metal", map[scoring.Indicator]float64{scoring.RSRating: 10.0}),
		entitySnap("FMCG", map[scoring.Indicator]float64{scoring.RSRating: 8.0}),
	})
	require.NoError(t, err)
	require.Len(t, group.Results, 5)
	assert.Empty(t, group.Excluded)

	for _, entity := range []string{"IT", "Pharma", "Auto", "Metal"} {
		r, ok := group.Lookup(entity)
		require.True(t, ok, entity)
		assert.Equal(t, 2.5, r.IndicatorRanks[scoring.RSRating], entity)
		assert.Equal(t, 2.5, r.AggregateRank, entity)
		assert.Equal(t, 10.0, r.Score, entity)
	}

	last, ok := group.Lookup("FMCG")
	require.True(t, ok)
	assert.Equal(t, 5.0, last.IndicatorRanks[scoring.RSRating])
	assert.Equal(t, 1.0, last.Score)
	assert.Equal(t, 5, last.Rank)
}

func TestMomentum_LinearOrdering(t *testing.T) {
	analyzer := NewAnalyzer(Config{MomentumWeights: rsiWeights(t)}, nil)

	group, err := analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{scoring.RSI: 75}),
		entitySnap("Pharma", map[scoring.Indicator]float64{scoring.RSI: 70}),
		entitySnap("Auto", map[scoring.Indicator]float64{scoring.RSI: 65}),
		entitySnap("Metal", map[scoring.Indicator]float64{scoring.RSI: 60}),
		entitySnap("FMCG", map[scoring.Indicator]float64{scoring.RSI: 55}),
	})
	require.NoError(t, err)
	require.Len(t, group.Results, 5)

	wantScores := []float64{10.0, 7.75, 5.5, 3.25, 1.0}
	wantOrder := []string{"IT", "Pharma", "Auto", "Metal", "FMCG"}
	for i, r := range group.Results {
		assert.Equal(t, wantOrder[i], r.Entity)
		assert.InDelta(t, wantScores[i], r.Score, 1e-9)
		assert.Equal(t, i+1, r.Rank)
		assert.InDelta(t, float64(i+1), r.IndicatorRanks[scoring.RSI], 1e-9)
		assert.Equal(t, gates.StatusNone, r.Status)
	}

	// Top 30% of five entities: the leader flag lands on the top scorers only.
	assert.True(t, group.Results[0].Leader)
	assert.False(t, group.Results[4].Leader)
}

func TestMomentum_MissingDataExcludesEntity(t *testing.T) {
	analyzer := NewAnalyzer(Config{MomentumWeights: rsiWeights(t)}, nil)

	group, err := analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{scoring.RSI: 60}),
		entitySnap("Pharma", map[scoring.Indicator]float64{scoring.CMF: 0.2}),
		entitySnap("Auto", map[scoring.Indicator]float64{scoring.RSI: 50}),
	})
	require.NoError(t, err)
	require.Len(t, group.Results, 2)
	require.Len(t, group.Excluded, 1)

	excluded := group.Excluded[0]
	assert.Equal(t, "Pharma", excluded.Entity)
	assert.True(t, excluded.Excluded)
	assert.Equal(t, gates.StatusExcluded, excluded.Status)
	assert.Equal(t, []string{"missing RSI value"}, excluded.ExclusionReasons)
	assert.Zero(t, excluded.Score)
	assert.Zero(t, excluded.Rank)

	// The two complete entities are ranked against each other only.
	best, _ := group.Lookup("IT")
	assert.Equal(t, 10.0, best.Score)
}

func TestScan_WeightMapRankingNothingIsConfigError(t *testing.T) {
	w, err := scoring.NewWeightMap(map[scoring.Indicator]float64{scoring.DISpread: 1.0})
	require.NoError(t, err)
	analyzer := NewAnalyzer(Config{MomentumWeights: w}, nil)

	_, err = analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{scoring.RSI: 60}),
		entitySnap("Auto", map[scoring.Indicator]float64{scoring.RSI: 55}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrNothingRanked)
}

func TestReversal_GateExcludesBeforeRanking(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Reversal([]scoring.Snapshot{
		// Fails RSI < 40 regardless of its other readings.
		entitySnap("Realty", map[scoring.Indicator]float64{
			scoring.RSI: 46.5, scoring.ADXZ: -2.0, scoring.CMF: 0.5, scoring.RSRating: 1.0,
		}),
		entitySnap("Media", map[scoring.Indicator]float64{
			scoring.RSI: 35, scoring.ADXZ: -1.0, scoring.CMF: 0.2, scoring.RSRating: 3.0,
		}),
		entitySnap("Metal", map[scoring.Indicator]float64{
			scoring.RSI: 30, scoring.ADXZ: -0.8, scoring.CMF: 0.05, scoring.RSRating: 2.0,
		}),
	})
	require.NoError(t, err)
	require.Len(t, group.Results, 2)
	require.Len(t, group.Excluded, 1)

	excluded := group.Excluded[0]
	assert.Equal(t, "Realty", excluded.Entity)
	assert.Equal(t, gates.StatusExcluded, excluded.Status)
	assert.Zero(t, excluded.Score)
	assert.Empty(t, excluded.IndicatorRanks)
	assert.Contains(t, excluded.ExclusionReasons[0], "RSI")

	for _, r := range group.Results {
		assert.NotEqual(t, "Realty", r.Entity)
		assert.NotEqual(t, gates.StatusExcluded, r.Status)
	}
}

func TestReversal_StatusTiers(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Reversal([]scoring.Snapshot{
		entitySnap("Media", map[scoring.Indicator]float64{
			scoring.RSI: 35, scoring.ADXZ: -1.0, scoring.CMF: 0.2, scoring.RSRating: 3.0,
		}),
		entitySnap("Metal", map[scoring.Indicator]float64{
			scoring.RSI: 30, scoring.ADXZ: -0.8, scoring.CMF: 0.05, scoring.RSRating: 2.0,
		}),
	})
	require.NoError(t, err)

	media, _ := group.Lookup("Media")
	assert.Equal(t, gates.StatusBuyDiv, media.Status)

	// Eligible but below the CMF confirmation threshold.
	metal, _ := group.Lookup("Metal")
	assert.Equal(t, gates.StatusWatch, metal.Status)
}

func TestReversal_SingleEligibleCandidate(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Reversal([]scoring.Snapshot{
		entitySnap("PSU Bank", map[scoring.Indicator]float64{
			scoring.RSI: 32, scoring.ADXZ: -1.5, scoring.CMF: 0.3, scoring.RSRating: 1.5,
		}),
		entitySnap("IT", map[scoring.Indicator]float64{
			scoring.RSI: 65, scoring.ADXZ: 1.0, scoring.CMF: 0.1, scoring.RSRating: 8.0,
		}),
	})
	require.NoError(t, err)
	require.Len(t, group.Results, 1)

	sole := group.Results[0]
	assert.Equal(t, "PSU Bank", sole.Entity)
	assert.Equal(t, 10.0, sole.Score)
	assert.Equal(t, 1, sole.Rank)
	assert.Equal(t, gates.StatusBuyDiv, sole.Status)
}

func TestReversal_EmptyEligibleSetIsNotAnError(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Reversal([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{
			scoring.RSI: 65, scoring.ADXZ: 1.0, scoring.CMF: 0.1, scoring.RSRating: 8.0,
		}),
		entitySnap("FMCG", map[scoring.Indicator]float64{
			scoring.RSI: 55, scoring.ADXZ: 0.2, scoring.CMF: -0.1, scoring.RSRating: 6.0,
		}),
	})
	require.NoError(t, err)
	assert.Empty(t, group.Results)
	assert.Len(t, group.Excluded, 2)
}

func TestScan_EmptyGroup(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Momentum(nil)
	require.NoError(t, err)
	assert.Empty(t, group.Results)
	assert.Empty(t, group.Excluded)
}

func TestScan_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)
	snaps := []scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{
			scoring.RSI: 62, scoring.ADXZ: 0.7, scoring.DISpread: 5.2, scoring.RSRating: 7.1,
		}),
		entitySnap("Pharma", map[scoring.Indicator]float64{
			scoring.RSI: 48, scoring.ADXZ: -0.2, scoring.DISpread: -1.3, scoring.RSRating: 4.4,
		}),
		entitySnap("Auto", map[scoring.Indicator]float64{
			scoring.RSI: 48, scoring.ADXZ: 0.1, scoring.DISpread: 2.0, scoring.RSRating: 4.4,
		}),
	}

	first, err := analyzer.Momentum(snaps)
	require.NoError(t, err)
	second, err := analyzer.Momentum(snaps)
	require.NoError(t, err)

	// Identical input and configuration yields identical ranked output; only
	// the run identifier differs.
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.Excluded, second.Excluded)
}

func TestScan_EntitiesTiedOnEveryIndicatorScoreEqually(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{
			scoring.RSI: 50, scoring.ADXZ: 0.5, scoring.DISpread: 1.0, scoring.RSRating: 5.0,
		}),
		entitySnap("Pharma", map[scoring.Indicator]float64{
			scoring.RSI: 50, scoring.ADXZ: 0.5, scoring.DISpread: 1.0, scoring.RSRating: 5.0,
		}),
		entitySnap("Auto", map[scoring.Indicator]float64{
			scoring.RSI: 60, scoring.ADXZ: 0.9, scoring.DISpread: 3.0, scoring.RSRating: 7.0,
		}),
	})
	require.NoError(t, err)

	it, _ := group.Lookup("IT")
	pharma, _ := group.Lookup("Pharma")
	assert.Equal(t, it.Score, pharma.Score)
	assert.Equal(t, it.Rank, pharma.Rank)
}

func TestScan_ScoreMonotonicInAggregateRank(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, nil)

	group, err := analyzer.Momentum([]scoring.Snapshot{
		entitySnap("IT", map[scoring.Indicator]float64{
			scoring.RSI: 72, scoring.ADXZ: 1.2, scoring.DISpread: 8.0, scoring.RSRating: 9.0,
		}),
		entitySnap("Pharma", map[scoring.Indicator]float64{
			scoring.RSI: 58, scoring.ADXZ: 0.4, scoring.DISpread: 2.5, scoring.RSRating: 6.0,
		}),
		entitySnap("Auto", map[scoring.Indicator]float64{
			scoring.RSI: 44, scoring.ADXZ: -0.6, scoring.DISpread: -3.0, scoring.RSRating: 3.0,
		}),
		entitySnap("Metal", map[scoring.Indicator]float64{
			scoring.RSI: 51, scoring.ADXZ: 0.0, scoring.DISpread: 0.5, scoring.RSRating: 5.0,
		}),
	})
	require.NoError(t, err)

	for _, a := range group.Results {
		for _, b := range group.Results {
			if a.AggregateRank < b.AggregateRank {
				assert.GreaterOrEqual(t, a.Score, b.Score, "%s vs %s", a.Entity, b.Entity)
			}
		}
		assert.GreaterOrEqual(t, a.Score, 1.0)
		assert.LessOrEqual(t, a.Score, 10.0)
	}
}

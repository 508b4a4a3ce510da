package scoring

import (
	"fmt"
	"sort"
)

// WeightMap holds validated, immutable indicator weights. Weights are plain
// relative magnitudes; they do not need to sum to 100 because aggregation
// always normalises by the total of the weights present.
type WeightMap struct {
	weights map[Indicator]float64
	inds    []Indicator
	total   float64
}

// NewWeightMap validates and freezes a weight map. Negative weights are a
// caller mistake and rejected outright; zero weights are dropped, since an
// indicator with no weight is never ranked and must not force a data
// requirement onto entities. At least one weight must be strictly positive.
func NewWeightMap(weights map[Indicator]float64) (WeightMap, error) {
	frozen := make(map[Indicator]float64, len(weights))
	var total float64
	for ind, w := range weights {
		if w < 0 {
			return WeightMap{}, fmt.Errorf("indicator %s: weight %.2f: %w", ind, w, ErrNegativeWeight)
		}
		if w == 0 {
			continue
		}
		frozen[ind] = w
		total += w
	}
	if total <= 0 {
		return WeightMap{}, ErrNoPositiveWeight
	}

	inds := make([]Indicator, 0, len(frozen))
	for ind := range frozen {
		inds = append(inds, ind)
	}
	sort.Slice(inds, func(i, j int) bool { return inds[i] < inds[j] })

	return WeightMap{weights: frozen, inds: inds, total: total}, nil
}

// DefaultMomentumWeights returns the stock momentum weighting:
// RS rating 40, RSI 30, ADX z-score 20, DI spread 10.
func DefaultMomentumWeights() WeightMap {
	w, _ := NewWeightMap(map[Indicator]float64{
		ADXZ:     20,
		RSRating: 40,
		RSI:      30,
		DISpread: 10,
	})
	return w
}

// DefaultReversalWeights returns the stock reversal weighting:
// RS rating 40, CMF 40, RSI 10, ADX z-score 10.
func DefaultReversalWeights() WeightMap {
	w, _ := NewWeightMap(map[Indicator]float64{
		RSRating: 40,
		CMF:      40,
		RSI:      10,
		ADXZ:     10,
	})
	return w
}

// Indicators returns the weighted indicators in a stable (sorted) order.
func (w WeightMap) Indicators() []Indicator {
	out := make([]Indicator, len(w.inds))
	copy(out, w.inds)
	return out
}

// Weight returns the weight for an indicator, zero if unreferenced.
func (w WeightMap) Weight(ind Indicator) float64 {
	return w.weights[ind]
}

// Total returns the sum of all weights.
func (w WeightMap) Total() float64 {
	return w.total
}

// Len returns the number of weighted indicators.
func (w WeightMap) Len() int {
	return len(w.inds)
}

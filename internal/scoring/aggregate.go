package scoring

// AggregateRank combines one entity's per-indicator fractional ranks into a
// single weighted rank, normalised by the sum of the weights that actually
// matched a ranked indicator. Indicators present in only one of the two maps
// contribute nothing.
func AggregateRank(ranks map[Indicator]float64, w WeightMap) (float64, error) {
	var sum, used float64
	for _, ind := range w.Indicators() {
		r, ok := ranks[ind]
		if !ok {
			continue
		}
		wt := w.Weight(ind)
		sum += r * wt
		used += wt
	}
	if used <= 0 {
		return 0, ErrNothingRanked
	}
	return sum / used, nil
}

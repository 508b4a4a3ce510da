package scoring

import "sort"

// FractionalRanks assigns each entity a rank in [1, len(values)] for one
// indicator. The best value according to the direction receives rank 1.
// Entities with numerically identical values share the average of the integer
// positions they collectively occupy, so four entities tied at the top all
// receive (1+2+3+4)/4 = 2.5. This is the one tie convention used everywhere;
// it keeps the sum of ranks equal to n(n+1)/2 regardless of ties.
func FractionalRanks(values map[string]float64, dir Direction) map[string]float64 {
	type obs struct {
		entity string
		value  float64
	}
	ordered := make([]obs, 0, len(values))
	for entity, v := range values {
		ordered = append(ordered, obs{entity: entity, value: v})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].value != ordered[j].value {
			if dir == HigherIsBetter {
				return ordered[i].value > ordered[j].value
			}
			return ordered[i].value < ordered[j].value
		}
		// Equal values share a rank; order within the run is irrelevant but
		// kept deterministic.
		return ordered[i].entity < ordered[j].entity
	})

	ranks := make(map[string]float64, len(ordered))
	for i := 0; i < len(ordered); {
		j := i
		for j < len(ordered) && ordered[j].value == ordered[i].value {
			j++
		}
		// Positions i+1..j occupy the run; tied entities share their average.
		shared := float64(i+1+j) / 2.0
		for k := i; k < j; k++ {
			ranks[ordered[k].entity] = shared
		}
		i = j
	}
	return ranks
}

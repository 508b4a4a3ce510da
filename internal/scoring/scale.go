package scoring

const (
	// ScoreBest and ScoreWorst bound the fixed output scale.
	ScoreBest  = 10.0
	ScoreWorst = 1.0

	// ScoreNeutral is assigned when aggregation cannot separate entities.
	ScoreNeutral = 5.0
)

// ScaleScores maps the group's aggregate-rank spread onto the fixed [1,10]
// scale: lowest aggregate rank (best) scores 10, highest scores 1, everything
// else interpolates linearly. Degenerate groups are handled before the
// formula: an empty group yields no scores, a single entity scores 10 (there
// is no internal spread to normalise against), and a fully tied group with
// more than one entity scores 5.0 across the board.
func ScaleScores(aggregate map[string]float64) map[string]float64 {
	scores := make(map[string]float64, len(aggregate))
	if len(aggregate) == 0 {
		return scores
	}
	if len(aggregate) == 1 {
		for entity := range aggregate {
			scores[entity] = ScoreBest
		}
		return scores
	}

	first := true
	var min, max float64
	for _, a := range aggregate {
		if first {
			min, max = a, a
			first = false
			continue
		}
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}

	if max == min {
		for entity := range aggregate {
			scores[entity] = ScoreNeutral
		}
		return scores
	}

	span := max - min
	for entity, a := range aggregate {
		scores[entity] = ScoreBest - ((a-min)/span)*(ScoreBest-ScoreWorst)
	}
	return scores
}

package scoring

import "errors"

// Configuration errors abort a whole call. Per-entity data problems never
// surface here; those become exclusions on the result set.
var (
	// ErrNoPositiveWeight is returned when a weight map carries no strictly
	// positive entry, so nothing could contribute to an aggregate rank.
	ErrNoPositiveWeight = errors.New("weight map has no positive weight")

	// ErrNegativeWeight is returned for weight maps with negative entries.
	ErrNegativeWeight = errors.New("weight map contains a negative weight")

	// ErrNothingRanked is returned when none of the weighted indicators is
	// present anywhere in the group, so no rank can be aggregated.
	ErrNothingRanked = errors.New("weight map references no ranked indicator")
)

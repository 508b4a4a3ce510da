package scoring

import (
	"math"
	"sort"
	"time"
)

// Indicator names a technical indicator carried by a snapshot. The set is
// fixed by the upstream indicator pipeline; the engine only compares values.
type Indicator string

const (
	RSI      Indicator = "RSI"
	ADXZ     Indicator = "ADX_Z"
	RSRating Indicator = "RS_Rating"
	DISpread Indicator = "DI_Spread"
	CMF      Indicator = "CMF"
)

// Mode selects which analysis the pipeline runs.
type Mode int

const (
	Momentum Mode = iota
	Reversal
)

func (m Mode) String() string {
	switch m {
	case Momentum:
		return "momentum"
	case Reversal:
		return "reversal"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name from config or CLI flags.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "momentum":
		return Momentum, true
	case "reversal":
		return Reversal, true
	default:
		return Momentum, false
	}
}

// Direction states which end of an indicator's range earns rank 1.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// DirectionFor returns the fixed ranking direction for an indicator under a
// given mode. Momentum rewards strength across the board. Reversal rewards
// weakness on trend/strength indicators but inflow (higher CMF) on money flow.
func DirectionFor(mode Mode, ind Indicator) Direction {
	if mode == Reversal && ind != CMF {
		return LowerIsBetter
	}
	return HigherIsBetter
}

// Snapshot is one entity's indicator readings at one point in time. Produced
// by the upstream provider and treated as read-only here.
type Snapshot struct {
	Entity    string                `json:"entity"`
	Symbol    string                `json:"symbol,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
	Values    map[Indicator]float64 `json:"values"`
}

// Value returns the indicator reading, reporting NaN/Inf readings as missing
// so they are excluded rather than silently compared.
func (s Snapshot) Value(ind Indicator) (float64, bool) {
	v, ok := s.Values[ind]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Missing reports which of the given indicators the snapshot lacks a usable
// value for, in sorted order.
func (s Snapshot) Missing(inds []Indicator) []Indicator {
	var missing []Indicator
	for _, ind := range inds {
		if _, ok := s.Value(ind); !ok {
			missing = append(missing, ind)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

package gates

import "github.com/rkotak/sectorscan/internal/scoring"

// Status tags a reversal entity's tier. Momentum results carry StatusNone —
// there is no status dimension when every complete entity is comparable.
type Status string

const (
	StatusNone     Status = ""
	StatusBuyDiv   Status = "BUY_DIV"
	StatusWatch    Status = "WATCH"
	StatusExcluded Status = "EXCLUDED"
)

// Classifier assigns status tiers to entities that already passed the
// eligibility gate. The confirmation rules are strictly tighter than the
// gate; eligible entities that miss them stay at watch level.
type Classifier struct {
	confirm RuleSet
}

// NewClassifier builds a classifier from a confirmation rule set, defaulting
// to the buy-divergence tier when none is supplied.
func NewClassifier(confirm RuleSet) *Classifier {
	if len(confirm) == 0 {
		confirm = BuyDivergenceRules()
	}
	return &Classifier{confirm: confirm}
}

// Classify returns the tier for an eligible entity. Callers must not pass
// entities that failed the eligibility gate; those are excluded upstream and
// never reach classification.
func (c *Classifier) Classify(snap scoring.Snapshot) Status {
	if ok, _ := c.confirm.Evaluate(snap); ok {
		return StatusBuyDiv
	}
	return StatusWatch
}

// Package gates holds the eligibility gate and status tiers applied before
// reversal ranking. Entities that fail the gate are excluded outright rather
// than scored low, so the relative ranking only ever compares true reversal
// candidates against each other.
package gates

import (
	"fmt"

	"github.com/rkotak/sectorscan/internal/scoring"
)

// Comparator is the inequality a rule applies against its threshold. Both
// comparisons are strict: a value sitting exactly on the threshold fails.
type Comparator int

const (
	Below Comparator = iota
	Above
)

func (c Comparator) String() string {
	if c == Above {
		return ">"
	}
	return "<"
}

// Rule is one strict-inequality condition on a single indicator.
type Rule struct {
	Indicator  scoring.Indicator `yaml:"indicator" json:"indicator"`
	Comparator Comparator        `yaml:"comparator" json:"comparator"`
	Threshold  float64           `yaml:"threshold" json:"threshold"`
}

// Check records the outcome of evaluating one rule against one snapshot.
type Check struct {
	Rule    Rule    `json:"rule"`
	Value   float64 `json:"value"`
	Missing bool    `json:"missing"`
	Passed  bool    `json:"passed"`
	Reason  string  `json:"reason,omitempty"`
}

// Evaluate applies the rule to a snapshot. A missing indicator value fails
// the rule referencing it; it is never defaulted.
func (r Rule) Evaluate(snap scoring.Snapshot) Check {
	check := Check{Rule: r}

	v, ok := snap.Value(r.Indicator)
	if !ok {
		check.Missing = true
		check.Reason = fmt.Sprintf("missing %s value", r.Indicator)
		return check
	}
	check.Value = v

	switch r.Comparator {
	case Above:
		check.Passed = v > r.Threshold
	default:
		check.Passed = v < r.Threshold
	}
	if !check.Passed {
		check.Reason = fmt.Sprintf("%s %.2f not %s %.2f", r.Indicator, v, r.Comparator, r.Threshold)
	}
	return check
}

// RuleSet is an ordered conjunction of rules: every rule must hold.
type RuleSet []Rule

// Evaluate runs every rule against the snapshot and reports whether all of
// them passed, along with the individual checks for exclusion reporting.
func (rs RuleSet) Evaluate(snap scoring.Snapshot) (bool, []Check) {
	checks := make([]Check, 0, len(rs))
	passed := true
	for _, rule := range rs {
		check := rule.Evaluate(snap)
		if !check.Passed {
			passed = false
		}
		checks = append(checks, check)
	}
	return passed, checks
}

// Indicators returns the distinct indicators the rule set references, in
// rule order.
func (rs RuleSet) Indicators() []scoring.Indicator {
	seen := make(map[scoring.Indicator]bool, len(rs))
	var inds []scoring.Indicator
	for _, rule := range rs {
		if !seen[rule.Indicator] {
			seen[rule.Indicator] = true
			inds = append(inds, rule.Indicator)
		}
	}
	return inds
}

// DefaultReversalGate is the stock screening gate for reversal candidates:
// RSI under 40 and ADX z-score under -0.5.
func DefaultReversalGate() RuleSet {
	return RuleSet{
		{Indicator: scoring.RSI, Comparator: Below, Threshold: 40},
		{Indicator: scoring.ADXZ, Comparator: Below, Threshold: -0.5},
	}
}

// BuyDivergenceRules is the fixed stricter tier among eligible candidates:
// weak RSI and trend plus positive money flow.
func BuyDivergenceRules() RuleSet {
	return RuleSet{
		{Indicator: scoring.RSI, Comparator: Below, Threshold: 40},
		{Indicator: scoring.ADXZ, Comparator: Below, Threshold: -0.5},
		{Indicator: scoring.CMF, Comparator: Above, Threshold: 0.1},
	}
}

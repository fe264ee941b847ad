// Package eval implements tri-state evaluation of a single rule condition
// against one encounter's feature token set.
//
// Every operator's missing-data behavior is an explicit arm, not a
// fallthrough. The engine collapses Indeterminate to "does not match", but
// the distinction is preserved here so callers (and tests) can tell "the
// data says no" apart from "the data is not there".
package eval

import (
	"github.com/pediguide/matcher/feature"
	"github.com/pediguide/matcher/ruleset"
	"github.com/pediguide/matcher/terminology"
)

// Result is the tri-state outcome of evaluating one condition.
type Result int

const (
	// NoMatch means the condition was evaluated and does not hold.
	NoMatch Result = iota
	// Match means the condition holds.
	Match
	// Indeterminate means the operator needed a token value to compare
	// against and the key was absent from the token set.
	Indeterminate
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case NoMatch:
		return "no-match"
	case Match:
		return "match"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Holds collapses the tri-state into the boolean the aggregator uses:
// ambiguous or missing data must never be treated as a match.
func (r Result) Holds() bool {
	return r == Match
}

// Condition evaluates one condition. terms may be nil, in which case
// descendant_of never matches. Malformed conditions (empty key, unknown
// operator, payload missing for the operator) evaluate to NoMatch; bad
// authoring yields a rule that does not fire, not an error.
func Condition(cond ruleset.Condition, tokens feature.Set, terms *terminology.Store) Result {
	if cond.Key == "" {
		return NoMatch
	}

	val, recorded := tokens.Lookup(cond.Key)
	present := recorded && val.IsPresent()

	switch cond.Op {
	case ruleset.OpPresent:
		if present {
			return Match
		}
		return NoMatch

	case ruleset.OpAbsent:
		if present {
			return NoMatch
		}
		return Match

	case ruleset.OpEquals:
		if cond.Value == nil {
			return NoMatch
		}
		if !present {
			return Indeterminate
		}
		s, ok := val.AsString()
		if !ok {
			return NoMatch
		}
		if s == *cond.Value {
			return Match
		}
		return NoMatch

	case ruleset.OpNotEquals:
		if cond.Value == nil {
			return NoMatch
		}
		// Absence is not proof of inequality: the token must be present
		// and differ.
		if !present {
			return Indeterminate
		}
		s, ok := val.AsString()
		if !ok {
			return NoMatch
		}
		if s != *cond.Value {
			return Match
		}
		return NoMatch

	case ruleset.OpGTE:
		if cond.ValueNumber == nil {
			return NoMatch
		}
		if !present {
			return Indeterminate
		}
		n, ok := val.AsNumber()
		if !ok {
			return NoMatch
		}
		if n.GreaterThanOrEqual(*cond.ValueNumber) {
			return Match
		}
		return NoMatch

	case ruleset.OpLTE:
		if cond.ValueNumber == nil {
			return NoMatch
		}
		if !present {
			return Indeterminate
		}
		n, ok := val.AsNumber()
		if !ok {
			return NoMatch
		}
		if n.LessThanOrEqual(*cond.ValueNumber) {
			return Match
		}
		return NoMatch

	case ruleset.OpBetween:
		if !present {
			return Indeterminate
		}
		n, ok := val.AsNumber()
		if !ok {
			return NoMatch
		}
		// Bounds are inclusive; an absent bound is unconstrained.
		if cond.MinNumber != nil && n.LessThan(*cond.MinNumber) {
			return NoMatch
		}
		if cond.MaxNumber != nil && n.GreaterThan(*cond.MaxNumber) {
			return NoMatch
		}
		return Match

	case ruleset.OpOneOf:
		if len(cond.Values) == 0 {
			return NoMatch
		}
		if !present {
			return Indeterminate
		}
		s, ok := val.AsString()
		if !ok {
			return NoMatch
		}
		for _, candidate := range cond.Values {
			if s == candidate {
				return Match
			}
		}
		return NoMatch

	case ruleset.OpDescendantOf:
		if cond.Value == nil || terms == nil {
			return NoMatch
		}
		ancestor, ok := terminology.ParseRef(*cond.Value)
		if !ok {
			return NoMatch
		}
		if !present {
			return Indeterminate
		}
		candidate, ok := conceptForToken(cond.Key, val, terms)
		if !ok {
			return NoMatch
		}
		if terms.IsDescendantOf(candidate, ancestor) {
			return Match
		}
		return NoMatch

	default:
		// Outside the closed operator set; never matches.
		return NoMatch
	}
}

// conceptForToken resolves the token to a concept id: a string value is
// parsed as an "sct:" reference, and a bare presence marker falls back to
// the feature-key bridge map from the terminology subset.
func conceptForToken(key string, val feature.Value, terms *terminology.Store) (int64, bool) {
	if s, ok := val.AsString(); ok {
		return terminology.ParseRef(s)
	}
	if val.Kind() == feature.KindMarker {
		return terms.ConceptForFeatureKey(key)
	}
	return 0, false
}

// Group evaluates a condition group: every member of All must hold and at
// least one member of Any must hold, each group holding vacuously when
// empty. Indeterminate members count as not holding.
func Group(group ruleset.ConditionGroup, tokens feature.Set, terms *terminology.Store) bool {
	for _, cond := range group.All {
		if !Condition(cond, tokens, terms).Holds() {
			return false
		}
	}

	if len(group.Any) == 0 {
		return true
	}
	for _, cond := range group.Any {
		if Condition(cond, tokens, terms).Holds() {
			return true
		}
	}
	return false
}

// Package ruleset defines the guideline document model and its JSON
// parser, validator and canonical formatter.
//
// A document is clinician-authored, untrusted input. Parsing has two
// independent failure tiers: a JSON syntax check with precise line/column
// diagnostics, then a strict structural decode. Content that parses but is
// semantically malformed (unknown operator, missing payload) is never
// rejected here; it degrades to "does not match" at evaluation time.
package ruleset

import "github.com/shopspring/decimal"

// Operator is the closed set of condition operators. Anything outside this
// set never matches at evaluation time.
type Operator string

const (
	// OpPresent matches when the key exists with a non-absent value.
	OpPresent Operator = "present"
	// OpAbsent matches when the key does not exist or is explicitly absent.
	OpAbsent Operator = "absent"
	// OpEquals matches when the token's string value equals Value exactly.
	OpEquals Operator = "equals"
	// OpNotEquals matches when the token is present and its string value
	// differs from Value. Absence is not proof of inequality.
	OpNotEquals Operator = "not_equals"
	// OpGTE matches when the token's numeric value is >= ValueNumber.
	OpGTE Operator = "gte"
	// OpLTE matches when the token's numeric value is <= ValueNumber.
	OpLTE Operator = "lte"
	// OpBetween matches when MinNumber <= value <= MaxNumber, inclusive.
	// An absent bound is unconstrained.
	OpBetween Operator = "between"
	// OpOneOf matches when the token's string value is a member of Values.
	OpOneOf Operator = "one_of"
	// OpDescendantOf matches when the token's terminology reference is a
	// strict descendant of the concept referenced by Value.
	OpDescendantOf Operator = "descendant_of"
)

// Operators lists the closed operator set in documentation order.
var Operators = []Operator{
	OpPresent, OpAbsent, OpEquals, OpNotEquals,
	OpGTE, OpLTE, OpBetween, OpOneOf, OpDescendantOf,
}

// Known reports whether op is a member of the closed operator set.
func (op Operator) Known() bool {
	switch op {
	case OpPresent, OpAbsent, OpEquals, OpNotEquals,
		OpGTE, OpLTE, OpBetween, OpOneOf, OpDescendantOf:
		return true
	}
	return false
}

// Condition is one testable predicate over the feature token set. Only the
// payload fields relevant to Op are meaningful; evaluators must ignore the
// rest even when populated.
type Condition struct {
	// Key names the feature token under test. An empty key is malformed and
	// never matches.
	Key string `json:"key"`

	Op Operator `json:"op"`

	// Value is the string payload for equals/not_equals and the terminology
	// reference for descendant_of.
	Value *string `json:"value,omitempty"`

	// ValueNumber is the numeric payload for gte/lte.
	ValueNumber *decimal.Decimal `json:"valueNumber,omitempty"`

	// MinNumber and MaxNumber bound the between operator, inclusive.
	MinNumber *decimal.Decimal `json:"minNumber,omitempty"`
	MaxNumber *decimal.Decimal `json:"maxNumber,omitempty"`

	// Values is the membership payload for one_of.
	Values []string `json:"values,omitempty"`
}

// ConditionGroup composes conditions into a rule trigger. Every member of
// All must hold; at least one member of Any must hold. Either group holds
// vacuously when empty.
type ConditionGroup struct {
	All []Condition `json:"all"`
	Any []Condition `json:"any"`
}

// Rule is one clinician-authored conditional statement that may raise an
// advisory flag.
type Rule struct {
	// ID is clinician-assigned and unique by convention only; duplicates are
	// permitted and each occurrence evaluates independently.
	ID string `json:"id"`

	// Flag is the human-readable alert text raised when the rule fires.
	Flag string `json:"flag"`

	// Priority ranks matches, 0..100; higher fires first.
	Priority int `json:"priority"`

	// Note is an optional free-text rationale shown on demand.
	Note string `json:"note,omitempty"`

	// When is the trigger: the rule fires iff both groups hold.
	When ConditionGroup `json:"when"`
}

// Document is a parsed guideline ruleset. Documents are replaced wholesale
// on each save; there is no incremental patching.
type Document struct {
	SchemaVersion string `json:"schemaVersion"`
	Rules         []Rule `json:"rules"`
}

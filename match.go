package guidelinematcher

import (
	"sort"
	"strings"
)

// Match is the output record produced when a rule fires for one encounter.
// Matches are produced fresh on every evaluation and never persisted by the
// engine.
type Match struct {
	// RuleID is the clinician-assigned id of the firing rule. Duplicate ids
	// within a document are permitted; each occurrence fires independently.
	RuleID string `json:"ruleId"`

	// FlagText is the human-readable alert text shown to the clinician.
	FlagText string `json:"flagText"`

	// Note is an optional free-text rationale shown on demand.
	Note string `json:"note,omitempty"`

	// Priority ranks the match; higher fires first.
	Priority int `json:"priority"`
}

// Rank sorts matches in place into the canonical output order: priority
// descending, ties broken by flag text ascending (case-insensitive). The sort
// is stable, so rules that tie on both keys keep document order. This makes
// evaluation output deterministic for identical inputs.
func Rank(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority > matches[j].Priority
		}
		return strings.ToLower(matches[i].FlagText) < strings.ToLower(matches[j].FlagText)
	})
}

// Ranked reports whether matches are already in canonical output order.
func Ranked(matches []Match) bool {
	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		if prev.Priority < cur.Priority {
			return false
		}
		if prev.Priority == cur.Priority &&
			strings.ToLower(prev.FlagText) > strings.ToLower(cur.FlagText) {
			return false
		}
	}
	return true
}

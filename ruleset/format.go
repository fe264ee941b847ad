package ruleset

import (
	"encoding/json"
	"fmt"
)

// Format renders a Document in canonical form: alphabetical key order,
// two-space indentation, and a trailing newline. Only payload fields that
// are actually set are emitted. The canonical form is stable, so a
// load → format → save round trip is idempotent and produces clean diffs
// for version-controlled rulesets.
func Format(doc *Document) ([]byte, error) {
	// Maps marshal with sorted keys, which gives the alphabetical ordering
	// for free; the document is rebuilt as a map tree for exactly that.
	tree := map[string]any{
		"schemaVersion": doc.SchemaVersion,
		"rules":         formatRules(doc.Rules),
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("format document: %w", err)
	}
	return append(out, '\n'), nil
}

func formatRules(rules []Rule) []any {
	out := make([]any, 0, len(rules))
	for _, r := range rules {
		m := map[string]any{
			"id":       r.ID,
			"flag":     r.Flag,
			"priority": r.Priority,
			"when": map[string]any{
				"all": formatConditions(r.When.All),
				"any": formatConditions(r.When.Any),
			},
		}
		if r.Note != "" {
			m["note"] = r.Note
		}
		out = append(out, m)
	}
	return out
}

func formatConditions(conds []Condition) []any {
	out := make([]any, 0, len(conds))
	for _, c := range conds {
		m := map[string]any{
			"key": c.Key,
			"op":  string(c.Op),
		}
		if c.Value != nil {
			m["value"] = *c.Value
		}
		if c.ValueNumber != nil {
			m["valueNumber"] = json.Number(c.ValueNumber.String())
		}
		if c.MinNumber != nil {
			m["minNumber"] = json.Number(c.MinNumber.String())
		}
		if c.MaxNumber != nil {
			m["maxNumber"] = json.Number(c.MaxNumber.String())
		}
		if c.Values != nil {
			m["values"] = c.Values
		}
		out = append(out, m)
	}
	return out
}

package ruleset

import (
	"fmt"

	guidelinematcher "github.com/pediguide/matcher"
	"github.com/pediguide/matcher/terminology"
)

// KeyCatalog answers whether a feature-token key is known to the extractor
// vocabulary. *registry.Registry satisfies it.
type KeyCatalog interface {
	Has(key string) bool
}

// Lint inspects a decoded document for authoring mistakes the engine will
// silently not act on: unknown operators, missing payloads, malformed
// terminology references, out-of-range priorities, duplicate rule ids, and
// keys outside the extractor vocabulary. Lint never blocks loading or
// evaluation; it exists so the authoring UI can warn before a rule quietly
// fails to fire. catalog may be nil to skip vocabulary checks.
func Lint(doc *Document, catalog KeyCatalog) []guidelinematcher.Issue {
	var issues []guidelinematcher.Issue

	seenIDs := make(map[string]bool, len(doc.Rules))
	for i, rule := range doc.Rules {
		rulePath := fmt.Sprintf("rules[%d]", i)

		if rule.ID == "" {
			issues = append(issues, warn(rule.ID, rulePath+".id", "rule has no id; matches cannot be traced back to it"))
		} else if seenIDs[rule.ID] {
			issues = append(issues, warn(rule.ID, rulePath+".id",
				fmt.Sprintf("duplicate rule id %q; both occurrences will evaluate and fire independently", rule.ID)))
		}
		seenIDs[rule.ID] = true

		if rule.Flag == "" {
			issues = append(issues, warn(rule.ID, rulePath+".flag", "rule has no flag text"))
		}
		if rule.Priority < 0 || rule.Priority > 100 {
			issues = append(issues, warn(rule.ID, rulePath+".priority",
				fmt.Sprintf("priority %d is outside 0..100", rule.Priority)))
		}

		issues = append(issues, lintConditions(rule, rulePath+".when.all", rule.When.All, catalog)...)
		issues = append(issues, lintConditions(rule, rulePath+".when.any", rule.When.Any, catalog)...)
	}
	return issues
}

func lintConditions(rule Rule, path string, conds []Condition, catalog KeyCatalog) []guidelinematcher.Issue {
	var issues []guidelinematcher.Issue
	for i, c := range conds {
		condPath := fmt.Sprintf("%s[%d]", path, i)

		if c.Key == "" {
			issues = append(issues, errIssue(rule.ID, condPath+".key", "condition has an empty key and will never match"))
		} else if catalog != nil && !catalog.Has(c.Key) {
			issues = append(issues, info(rule.ID, condPath+".key",
				fmt.Sprintf("key %q is not in the extractor vocabulary; the extractor may never emit it", c.Key)))
		}

		if !c.Op.Known() {
			issues = append(issues, errIssue(rule.ID, condPath+".op",
				fmt.Sprintf("unknown operator %q; the condition will never match", c.Op)))
			continue
		}

		issues = append(issues, lintPayload(rule.ID, condPath, c)...)
	}
	return issues
}

// lintPayload checks that the payload fields an operator needs are present
// and well-formed. Extra irrelevant payload fields are permitted; the
// evaluator ignores them.
func lintPayload(ruleID, path string, c Condition) []guidelinematcher.Issue {
	var issues []guidelinematcher.Issue

	switch c.Op {
	case OpEquals, OpNotEquals:
		if c.Value == nil {
			issues = append(issues, errIssue(ruleID, path+".value",
				fmt.Sprintf("operator %q needs a value; the condition will never match", c.Op)))
		}
	case OpGTE, OpLTE:
		if c.ValueNumber == nil {
			issues = append(issues, errIssue(ruleID, path+".valueNumber",
				fmt.Sprintf("operator %q needs a valueNumber; the condition will never match", c.Op)))
		}
	case OpBetween:
		if c.MinNumber == nil && c.MaxNumber == nil {
			issues = append(issues, warn(ruleID, path,
				"between with neither bound matches any numeric value; use present instead"))
		}
		if c.MinNumber != nil && c.MaxNumber != nil && c.MinNumber.GreaterThan(*c.MaxNumber) {
			issues = append(issues, errIssue(ruleID, path,
				"minNumber is greater than maxNumber; the condition will never match"))
		}
	case OpOneOf:
		if len(c.Values) == 0 {
			issues = append(issues, errIssue(ruleID, path+".values",
				"one_of with an empty values list will never match"))
		}
	case OpDescendantOf:
		if c.Value == nil {
			issues = append(issues, errIssue(ruleID, path+".value",
				"descendant_of needs a value naming the ancestor concept; the condition will never match"))
		} else if _, ok := terminology.ParseRef(*c.Value); !ok {
			issues = append(issues, errIssue(ruleID, path+".value",
				fmt.Sprintf("%q is not a terminology reference (expected %q followed by a concept id)", *c.Value, terminology.Scheme)))
		}
	}
	return issues
}

func errIssue(ruleID, path, msg string) guidelinematcher.Issue {
	return guidelinematcher.Issue{Severity: guidelinematcher.SeverityError, Message: msg, RuleID: ruleID, Path: path}
}

func warn(ruleID, path, msg string) guidelinematcher.Issue {
	return guidelinematcher.Issue{Severity: guidelinematcher.SeverityWarning, Message: msg, RuleID: ruleID, Path: path}
}

func info(ruleID, path, msg string) guidelinematcher.Issue {
	return guidelinematcher.Issue{Severity: guidelinematcher.SeverityInformation, Message: msg, RuleID: ruleID, Path: path}
}

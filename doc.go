// Package guidelinematcher provides a deterministic guideline matching engine
// for pediatric clinical encounters.
//
// The engine evaluates a clinician-authored JSON ruleset against the normalized
// feature tokens of one encounter and produces a ranked list of advisory flags.
// Rule conditions support presence tests, string and numeric comparisons,
// ranges, set membership, and terminology ancestry tests (descendant_of)
// resolved against a read-only SNOMED-subset terminology store.
//
// Basic usage:
//
//	store, err := terminology.LoadSQLite("snomed.sqlite", logger)
//	if err != nil {
//		// fatal: the engine cannot run without terminology
//	}
//
//	doc, err := ruleset.Load(jsonText)
//	if err != nil {
//		// *guidelinematcher.SyntaxError or *guidelinematcher.SchemaError
//	}
//
//	eng, err := engine.New(store)
//	matches := eng.Evaluate(tokens, doc)
//
// Evaluation is pure and side-effect free: for a fixed token set, document and
// store the returned match sequence is identical on every call. Malformed rule
// content never raises; a condition that cannot be evaluated simply does not
// match.
package guidelinematcher

package guidelinematcher

import "fmt"

// SyntaxError reports malformed JSON in a guideline document.
// Line and Column are 1-based and point at (or immediately before) the
// offending byte, so a rule author can locate the problem in an editor.
type SyntaxError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SchemaError reports JSON that parsed cleanly but does not match the
// guideline document shape. It is deliberately distinct from SyntaxError so
// callers can tell "your JSON is broken" apart from "your JSON is valid but
// not a ruleset".
type SchemaError struct {
	Message string `json:"message"`
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Message
}

package ruleset

import (
	"encoding/json"
	"errors"
	"fmt"

	guidelinematcher "github.com/pediguide/matcher"
)

// CheckSyntax runs a generic JSON well-formedness check and reports the
// first failure with a precise 1-based line/column. It runs before schema
// decoding so a rule author sees "line 3, column 12: unexpected '}'" rather
// than a schema message about a document that never parsed.
func CheckSyntax(data []byte) *guidelinematcher.SyntaxError {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		// Offset counts bytes consumed, landing just past the offending
		// character; step back one so the position points at it.
		line, column := PositionAt(data, synErr.Offset-1)
		return &guidelinematcher.SyntaxError{
			Line:    line,
			Column:  column,
			Message: synErr.Error(),
		}
	}

	// No position available (e.g. empty input); report the start.
	return &guidelinematcher.SyntaxError{Line: 1, Column: 1, Message: err.Error()}
}

// Decode performs the strict structural decode of syntactically valid JSON
// into a Document. Unknown top-level fields are ignored for forward
// compatibility; absent condition groups default to empty sequences. Shape
// mismatches return a *guidelinematcher.SchemaError.
func Decode(data []byte) (*Document, error) {
	// json.Unmarshal treats a JSON null as a no-op on the target, which
	// would let "null" pass as an empty document. Require an object root
	// up front so every non-object value fails this tier.
	if name := rootValueName(data); name != "object" {
		return nil, &guidelinematcher.SchemaError{
			Message: fmt.Sprintf("(document root): expected object, got JSON %s", name),
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, schemaError(err)
	}

	// Empty groups hold vacuously; normalize nil to empty so downstream
	// code never distinguishes "absent" from "empty".
	for i := range doc.Rules {
		if doc.Rules[i].When.All == nil {
			doc.Rules[i].When.All = []Condition{}
		}
		if doc.Rules[i].When.Any == nil {
			doc.Rules[i].When.Any = []Condition{}
		}
	}
	return &doc, nil
}

// Load parses raw JSON text into a Document, running both failure tiers in
// order: syntax first (more actionable for a non-programmer author), then
// schema. The error is a *guidelinematcher.SyntaxError or
// *guidelinematcher.SchemaError respectively.
func Load(data []byte) (*Document, error) {
	if synErr := CheckSyntax(data); synErr != nil {
		return nil, synErr
	}
	return Decode(data)
}

// rootValueName names the JSON value kind implied by the first
// non-whitespace byte. Input is known to be well-formed JSON by the time
// this runs.
func rootValueName(data []byte) string {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
		case '{':
			return "object"
		case '[':
			return "array"
		case '"':
			return "string"
		case 't', 'f':
			return "boolean"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "nothing"
}

// schemaError converts a decoding failure into the user-facing SchemaError.
func schemaError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(document root)"
		}
		return &guidelinematcher.SchemaError{
			Message: fmt.Sprintf("%s: expected %s, got JSON %s", field, typeErr.Type, typeErr.Value),
		}
	}
	return &guidelinematcher.SchemaError{Message: err.Error()}
}

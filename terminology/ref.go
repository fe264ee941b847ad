package terminology

import (
	"strconv"
	"strings"
)

// Scheme is the fixed prefix tagging terminology references in feature-token
// values and rule payloads, e.g. "sct:233604007".
const Scheme = "sct:"

// ParseRef parses a terminology reference of the form "sct:<integer id>".
// ok is false for any non-conforming string; callers treat unparseable
// references as non-matching, never as errors.
func ParseRef(s string) (id int64, ok bool) {
	rest, found := strings.CutPrefix(s, Scheme)
	if !found || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// FormatRef renders a concept id in reference form.
func FormatRef(id int64) string {
	return Scheme + strconv.FormatInt(id, 10)
}

// Package feature models the normalized observation tokens of one encounter.
//
// A token is a key → value observation produced by the external feature
// extractor, e.g. the presence of a complaint ("sick.hpi.complaint.fever"),
// a numeric vital ("vitals.temp_c" → 38.5) or a coded diagnosis
// ("dx" → "sct:233604007"). The engine treats a token set as immutable for
// the duration of one evaluation pass.
package feature

import "github.com/shopspring/decimal"

// Kind discriminates the value variants a token can carry.
type Kind int

const (
	// KindAbsent marks a key that was explicitly recorded as not present.
	KindAbsent Kind = iota
	// KindMarker marks bare presence with no attached value.
	KindMarker
	// KindString carries a string value.
	KindString
	// KindNumber carries a numeric value.
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindMarker:
		return "marker"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a tagged union of the possible token values. The zero value is
// KindAbsent.
type Value struct {
	kind Kind
	str  string
	num  decimal.Decimal
}

// Absent returns the explicit-absence value.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Marker returns a bare-presence value.
func Marker() Value {
	return Value{kind: KindMarker}
}

// String returns a string-valued token value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric token value.
func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// Float returns a numeric token value from a float64.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: decimal.NewFromFloat(f)}
}

// Kind returns the value's variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsPresent reports whether the value represents any recorded observation,
// i.e. anything other than explicit absence.
func (v Value) IsPresent() bool {
	return v.kind != KindAbsent
}

// AsString returns the string payload. ok is false unless Kind is KindString.
func (v Value) AsString() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload. ok is false unless Kind is KindNumber.
func (v Value) AsNumber() (d decimal.Decimal, ok bool) {
	if v.kind != KindNumber {
		return decimal.Decimal{}, false
	}
	return v.num, true
}

// GoString aids test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return "feature.String(" + v.str + ")"
	case KindNumber:
		return "feature.Number(" + v.num.String() + ")"
	default:
		return "feature." + v.kind.String()
	}
}

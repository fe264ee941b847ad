package feature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Set is the feature token set of one encounter: a flat key → value map.
// A Set is built once per encounter snapshot and must not be mutated while an
// evaluation is in flight.
type Set map[string]Value

// NewSet returns an empty token set.
func NewSet() Set {
	return make(Set)
}

// Put records a token. It returns the set for chained construction in tests.
func (s Set) Put(key string, v Value) Set {
	s[key] = v
	return s
}

// Lookup returns the value for key. ok is false when the key was never
// recorded; an explicitly absent token returns ok=true with a KindAbsent
// value. Operators decide how each case maps onto match results.
func (s Set) Lookup(key string) (v Value, ok bool) {
	v, ok = s[key]
	return v, ok
}

// Keys returns the recorded keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseSet decodes a token set from its JSON interchange form: an object of
// key → value where true means bare presence, null means explicit absence,
// and strings and numbers carry themselves.
//
//	{"sick.hpi.complaint.fever": true, "vitals.temp_c": 38.5, "sex": "M"}
func ParseSet(data []byte) (Set, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid token set: %w", err)
	}

	set := make(Set, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case nil:
			set[key] = Absent()
		case bool:
			if v {
				set[key] = Marker()
			} else {
				set[key] = Absent()
			}
		case string:
			set[key] = String(v)
		case json.Number:
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				return nil, fmt.Errorf("invalid number for token %q: %w", key, err)
			}
			set[key] = Number(d)
		default:
			return nil, fmt.Errorf("token %q: unsupported value type %T", key, val)
		}
	}
	return set, nil
}

// Package registry provides the static catalog of feature-token keys the
// extractor is known to emit.
//
// The catalog powers the searchable key picker in the rule authoring UI.
// Its vocabulary must stay in lockstep with the extractor: a key added to
// the extractor without a matching catalog entry cannot be discovered by
// rule authors. Drift is a correctness risk, not a crash risk, and is
// surfaced by ruleset linting.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed keys.json
var keysJSON []byte

// Entry describes one feature-token key.
type Entry struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Example  string `json:"example"`
}

// Registry is a read-only key catalog.
type Registry struct {
	entries []Entry
	byKey   map[string]Entry
}

// Default returns the registry built from the embedded catalog. The embedded
// catalog is validated at build time by tests, so failure here indicates a
// corrupted binary.
func Default() (*Registry, error) {
	return FromJSON(keysJSON)
}

// FromJSON builds a registry from a JSON array of entries.
func FromJSON(data []byte) (*Registry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse key catalog: %w", err)
	}

	r := &Registry{
		entries: entries,
		byKey:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("key catalog entry with empty key")
		}
		if _, dup := r.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate key catalog entry %q", e.Key)
		}
		r.byKey[e.Key] = e
	}

	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].Key < r.entries[j].Key })
	return r, nil
}

// Has reports whether key is in the catalog.
func (r *Registry) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Get returns the catalog entry for key.
func (r *Registry) Get(key string) (Entry, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns all entries sorted by key.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, e := range r.entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// Search returns entries whose key contains query, case-insensitive,
// prefix hits first then alphabetical, truncated to limit. An empty query
// yields no results.
func (r *Registry) Search(query string, limit int) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	var prefixHits, substrHits []Entry
	for _, e := range r.entries {
		key := strings.ToLower(e.Key)
		switch {
		case strings.HasPrefix(key, query):
			prefixHits = append(prefixHits, e)
		case strings.Contains(key, query):
			substrHits = append(substrHits, e)
		}
	}

	results := append(prefixHits, substrHits...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

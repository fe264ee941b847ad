package terminology

import (
	"sort"
	"strings"

	"github.com/pediguide/matcher/cache"
)

// Concept is one clinical concept record.
type Concept struct {
	// ID is the stable concept identifier (SNOMED CT conceptId).
	ID int64
	// Term is the preferred label.
	Term string
	// Synonyms are additional searchable labels, in load order.
	Synonyms []string
}

// SearchResult is one hit returned by SearchTerms.
type SearchResult struct {
	ConceptID int64  `json:"conceptId"`
	Term      string `json:"term"`
	// Subtitle carries the synonym that matched when the preferred term did
	// not, so authoring UIs can show why a hit is relevant.
	Subtitle string `json:"subtitle,omitempty"`
}

// LookupRecorder observes descendant-cache lookup outcomes. A
// *guidelinematcher.Metrics satisfies it, so one metrics instance can
// account for both engine and store activity.
type LookupRecorder interface {
	RecordDescendantCacheHit()
	RecordDescendantCacheMiss()
}

// Store resolves concept metadata, is-a ancestry, and free-text search.
// A Store is immutable after construction.
type Store struct {
	concepts   map[int64]Concept
	parents    map[int64][]int64
	featureMap map[string]int64
	meta       map[string]string

	// sorted by term for stable search output
	searchOrder []int64

	descendants *cache.Cache[ancestryKey, bool]
	recorder    LookupRecorder
}

type ancestryKey struct {
	candidate int64
	ancestor  int64
}

// Builder accumulates concept data and produces an immutable Store.
type Builder struct {
	concepts   map[int64]Concept
	parents    map[int64][]int64
	featureMap map[string]int64
	meta       map[string]string
	cacheSize  int
	recorder   LookupRecorder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		concepts:   make(map[int64]Concept),
		parents:    make(map[int64][]int64),
		featureMap: make(map[string]int64),
		meta:       make(map[string]string),
		cacheSize:  4096,
	}
}

// AddConcept records a concept. Re-adding an id replaces the prior record.
func (b *Builder) AddConcept(id int64, term string, synonyms ...string) *Builder {
	b.concepts[id] = Concept{ID: id, Term: term, Synonyms: synonyms}
	return b
}

// AddEdge records one is-a edge: child is-a parent.
func (b *Builder) AddEdge(child, parent int64) *Builder {
	b.parents[child] = append(b.parents[child], parent)
	return b
}

// MapFeatureKey bridges a feature-token key onto a concept id, so tokens
// that carry bare presence markers can still participate in ancestry tests.
func (b *Builder) MapFeatureKey(key string, conceptID int64) *Builder {
	b.featureMap[key] = conceptID
	return b
}

// SetMeta records one subset build metadata entry.
func (b *Builder) SetMeta(key, value string) *Builder {
	b.meta[key] = value
	return b
}

// WithDescendantCacheSize sets the capacity of the descendant-decision cache.
func (b *Builder) WithDescendantCacheSize(n int) *Builder {
	if n > 0 {
		b.cacheSize = n
	}
	return b
}

// WithLookupRecorder attaches a recorder notified on every descendant-cache
// lookup. nil (the default) disables recording.
func (b *Builder) WithLookupRecorder(r LookupRecorder) *Builder {
	b.recorder = r
	return b
}

// Build produces the immutable Store. The builder must not be reused.
func (b *Builder) Build() *Store {
	s := &Store{
		concepts:    b.concepts,
		parents:     b.parents,
		featureMap:  b.featureMap,
		meta:        b.meta,
		descendants: cache.New[ancestryKey, bool](b.cacheSize),
		recorder:    b.recorder,
	}

	s.searchOrder = make([]int64, 0, len(s.concepts))
	for id := range s.concepts {
		s.searchOrder = append(s.searchOrder, id)
	}
	sort.Slice(s.searchOrder, func(i, j int) bool {
		ti := s.concepts[s.searchOrder[i]].Term
		tj := s.concepts[s.searchOrder[j]].Term
		if ti != tj {
			return ti < tj
		}
		return s.searchOrder[i] < s.searchOrder[j]
	})

	return s
}

// Concept returns the concept record for id.
func (s *Store) Concept(id int64) (Concept, bool) {
	c, ok := s.concepts[id]
	return c, ok
}

// Count returns the number of loaded concepts.
func (s *Store) Count() int {
	return len(s.concepts)
}

// ConceptForFeatureKey resolves a feature-token key through the bridge map.
func (s *Store) ConceptForFeatureKey(key string) (int64, bool) {
	id, ok := s.featureMap[key]
	return id, ok
}

// Meta returns the subset build metadata (release date, module, row counts).
func (s *Store) Meta() map[string]string {
	out := make(map[string]string, len(s.meta))
	for k, v := range s.meta {
		out[k] = v
	}
	return out
}

// IsDescendantOf reports whether ancestor appears in candidate's transitive
// is-a parent chain. A concept is not its own descendant. Unknown ids on
// either side yield false; missing data is a non-match, never an error.
func (s *Store) IsDescendantOf(candidate, ancestor int64) bool {
	if candidate == ancestor {
		return false
	}

	key := ancestryKey{candidate: candidate, ancestor: ancestor}
	if v, ok := s.descendants.Get(key); ok {
		if s.recorder != nil {
			s.recorder.RecordDescendantCacheHit()
		}
		return v
	}
	if s.recorder != nil {
		s.recorder.RecordDescendantCacheMiss()
	}

	found := s.walkAncestors(candidate, ancestor)
	s.descendants.Set(key, found)
	return found
}

// walkAncestors does an iterative BFS up the parent chain. The visited set
// guards against cycles in malformed hierarchies.
func (s *Store) walkAncestors(candidate, ancestor int64) bool {
	visited := map[int64]bool{candidate: true}
	queue := append([]int64(nil), s.parents[candidate]...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		visited[id] = true

		if id == ancestor {
			return true
		}
		queue = append(queue, s.parents[id]...)
	}
	return false
}

// SearchTerms performs a case-insensitive substring search over preferred
// terms and synonyms. Exact-prefix hits order before substring-only hits,
// then alphabetical by term; output is truncated to limit. An empty query
// yields no results.
func (s *Store) SearchTerms(query string, limit int) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	var prefixHits, substrHits []SearchResult
	for _, id := range s.searchOrder {
		c := s.concepts[id]

		hit, prefix, subtitle := matchConcept(c, query)
		if !hit {
			continue
		}

		r := SearchResult{ConceptID: c.ID, Term: c.Term, Subtitle: subtitle}
		if prefix {
			prefixHits = append(prefixHits, r)
		} else {
			substrHits = append(substrHits, r)
		}
	}

	results := append(prefixHits, substrHits...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchConcept tests one concept against a lowercased query. prefix is true
// when the term or any synonym starts with the query; subtitle names the
// matching synonym when the preferred term itself did not match.
func matchConcept(c Concept, query string) (hit, prefix bool, subtitle string) {
	term := strings.ToLower(c.Term)
	if strings.HasPrefix(term, query) {
		return true, true, ""
	}
	termHit := strings.Contains(term, query)

	for _, syn := range c.Synonyms {
		low := strings.ToLower(syn)
		if strings.HasPrefix(low, query) {
			if termHit {
				return true, true, ""
			}
			return true, true, syn
		}
		if !termHit && subtitle == "" && strings.Contains(low, query) {
			subtitle = syn
		}
	}

	if termHit {
		return true, false, ""
	}
	if subtitle != "" {
		return true, false, subtitle
	}
	return false, false, ""
}

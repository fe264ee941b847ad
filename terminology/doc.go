// Package terminology provides the read-only clinical concept store used by
// the guideline matching engine.
//
// The store holds a SNOMED CT subset: concept records (id, preferred term,
// synonyms), the transitive is-a hierarchy, and a bridge table mapping the
// application's feature-token keys onto concept ids. It is loaded once at
// process start, either from the shipped single-file SQLite subset or built
// in memory (tests, tools), and is immutable afterwards; concurrent reads
// need no locking.
package terminology

package guidelinematcher

import (
	"sync/atomic"
	"time"
)

// Metrics tracks engine performance using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Evaluation counts
	evaluationsTotal atomic.Uint64
	rulesEvaluated   atomic.Uint64
	matchesTotal     atomic.Uint64

	// Timing (stored as nanoseconds)
	evalTimeTotal atomic.Uint64
	evalTimeMin   atomic.Uint64
	evalTimeMax   atomic.Uint64

	// Parse failures by tier
	syntaxErrorsTotal atomic.Uint64
	schemaErrorsTotal atomic.Uint64

	// Descendant lookup cache
	descendantCacheHits   atomic.Uint64
	descendantCacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first value becomes the minimum
	m.evalTimeMin.Store(^uint64(0))
	return m
}

// RecordEvaluation records one completed evaluation pass.
func (m *Metrics) RecordEvaluation(duration time.Duration, rules, matches int) {
	m.evaluationsTotal.Add(1)
	m.rulesEvaluated.Add(uint64(rules))
	m.matchesTotal.Add(uint64(matches))

	ns := uint64(duration.Nanoseconds())
	m.evalTimeTotal.Add(ns)

	for {
		old := m.evalTimeMin.Load()
		if ns >= old {
			break
		}
		if m.evalTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.evalTimeMax.Load()
		if ns <= old {
			break
		}
		if m.evalTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSyntaxError records a document rejected at the JSON syntax tier.
func (m *Metrics) RecordSyntaxError() {
	m.syntaxErrorsTotal.Add(1)
}

// RecordSchemaError records a document rejected at the schema tier.
func (m *Metrics) RecordSchemaError() {
	m.schemaErrorsTotal.Add(1)
}

// RecordDescendantCacheHit records a descendant-lookup cache hit.
func (m *Metrics) RecordDescendantCacheHit() {
	m.descendantCacheHits.Add(1)
}

// RecordDescendantCacheMiss records a descendant-lookup cache miss.
func (m *Metrics) RecordDescendantCacheMiss() {
	m.descendantCacheMisses.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	EvaluationsTotal uint64
	RulesEvaluated   uint64
	MatchesTotal     uint64

	EvalTimeTotal time.Duration
	EvalTimeMin   time.Duration
	EvalTimeMax   time.Duration
	EvalTimeAvg   time.Duration

	SyntaxErrorsTotal uint64
	SchemaErrorsTotal uint64

	DescendantCacheHits   uint64
	DescendantCacheMisses uint64
}

// Snapshot returns a consistent-enough point-in-time view of the metrics.
// Individual fields are read atomically; the set as a whole is not a
// transaction.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		EvaluationsTotal:      m.evaluationsTotal.Load(),
		RulesEvaluated:        m.rulesEvaluated.Load(),
		MatchesTotal:          m.matchesTotal.Load(),
		EvalTimeTotal:         time.Duration(m.evalTimeTotal.Load()),
		EvalTimeMax:           time.Duration(m.evalTimeMax.Load()),
		SyntaxErrorsTotal:     m.syntaxErrorsTotal.Load(),
		SchemaErrorsTotal:     m.schemaErrorsTotal.Load(),
		DescendantCacheHits:   m.descendantCacheHits.Load(),
		DescendantCacheMisses: m.descendantCacheMisses.Load(),
	}

	if min := m.evalTimeMin.Load(); min != ^uint64(0) {
		s.EvalTimeMin = time.Duration(min)
	}
	if s.EvaluationsTotal > 0 {
		s.EvalTimeAvg = s.EvalTimeTotal / time.Duration(s.EvaluationsTotal)
	}
	return s
}

// Reset zeroes all metrics.
func (m *Metrics) Reset() {
	m.evaluationsTotal.Store(0)
	m.rulesEvaluated.Store(0)
	m.matchesTotal.Store(0)
	m.evalTimeTotal.Store(0)
	m.evalTimeMin.Store(^uint64(0))
	m.evalTimeMax.Store(0)
	m.syntaxErrorsTotal.Store(0)
	m.schemaErrorsTotal.Store(0)
	m.descendantCacheHits.Store(0)
	m.descendantCacheMisses.Store(0)
}

// Package engine runs guideline documents against encounter token sets and
// produces ranked advisory matches.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	guidelinematcher "github.com/pediguide/matcher"
	"github.com/pediguide/matcher/eval"
	"github.com/pediguide/matcher/feature"
	"github.com/pediguide/matcher/ruleset"
	"github.com/pediguide/matcher/terminology"
)

// ErrNoTerminology is returned by New when no terminology store is supplied.
// The store is a hard startup dependency: without it no meaningful
// evaluation can occur.
var ErrNoTerminology = errors.New("engine: terminology store is required")

// Engine evaluates guideline documents. It holds no mutable state across
// calls except its metrics; concurrent evaluations are safe.
type Engine struct {
	terms   *terminology.Store
	options *guidelinematcher.Options
	metrics *guidelinematcher.Metrics
}

// New creates an Engine bound to a terminology store.
func New(terms *terminology.Store, opts ...guidelinematcher.Option) (*Engine, error) {
	if terms == nil {
		return nil, ErrNoTerminology
	}

	options := guidelinematcher.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	metrics := options.MetricsSink
	if metrics == nil {
		metrics = guidelinematcher.NewMetrics()
	}

	return &Engine{
		terms:   terms,
		options: options,
		metrics: metrics,
	}, nil
}

// LoadDocument parses raw ruleset JSON via ruleset.Load, counting rejected
// documents by failure tier in the engine's metrics.
func (e *Engine) LoadDocument(data []byte) (*ruleset.Document, error) {
	doc, err := ruleset.Load(data)
	if err != nil && e.options.CollectMetrics {
		var synErr *guidelinematcher.SyntaxError
		if errors.As(err, &synErr) {
			e.metrics.RecordSyntaxError()
		} else {
			e.metrics.RecordSchemaError()
		}
	}
	return doc, err
}

// Evaluate runs every rule in doc against one encounter's token set and
// returns the firing rules as ranked matches: priority descending, ties by
// flag text ascending case-insensitive. Output is deterministic for
// identical inputs. Malformed rule content never raises; it simply does not
// fire.
func (e *Engine) Evaluate(tokens feature.Set, doc *ruleset.Document) []guidelinematcher.Match {
	start := time.Now()

	matches := Evaluate(tokens, doc, e.terms)

	if e.options.MaxMatches > 0 && len(matches) > e.options.MaxMatches {
		matches = matches[:e.options.MaxMatches]
	}
	if e.options.CollectMetrics {
		rules := 0
		if doc != nil {
			rules = len(doc.Rules)
		}
		e.metrics.RecordEvaluation(time.Since(start), rules, len(matches))
	}
	return matches
}

// EvaluateBatch evaluates many independent encounters against the same
// document in parallel, preserving input order. Evaluations are independent,
// so the only coordination is the worker cap.
func (e *Engine) EvaluateBatch(ctx context.Context, sets []feature.Set, doc *ruleset.Document) [][]guidelinematcher.Match {
	results := make([][]guidelinematcher.Match, len(sets))

	workers := e.options.WorkerCount
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, tokens := range sets {
		wg.Add(1)
		go func(idx int, tokens feature.Set) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			results[idx] = e.Evaluate(tokens, doc)
		}(i, tokens)
	}

	wg.Wait()
	return results
}

// Metrics returns the engine's metrics.
func (e *Engine) Metrics() *guidelinematcher.Metrics {
	return e.metrics
}

// Options returns the engine's configuration.
func (e *Engine) Options() *guidelinematcher.Options {
	return e.options
}

// Terminology returns the store the engine was built with.
func (e *Engine) Terminology() *terminology.Store {
	return e.terms
}

// Evaluate is the pure aggregation function behind Engine.Evaluate: run
// every rule, collect matches in document order, then rank. terms may be
// nil for rulesets that use no ancestry tests.
func Evaluate(tokens feature.Set, doc *ruleset.Document, terms *terminology.Store) []guidelinematcher.Match {
	if doc == nil {
		return nil
	}

	matches := make([]guidelinematcher.Match, 0, 4)
	for _, rule := range doc.Rules {
		if !eval.Group(rule.When, tokens, terms) {
			continue
		}
		matches = append(matches, guidelinematcher.Match{
			RuleID:   rule.ID,
			FlagText: rule.Flag,
			Note:     rule.Note,
			Priority: rule.Priority,
		})
	}

	guidelinematcher.Rank(matches)
	return matches
}

package guidelinematcher

import "github.com/prometheus/client_golang/prometheus"

// Collector returns a prometheus.Collector exposing this Metrics instance.
// The collector reads the atomic counters on scrape; it holds no state of its
// own, so a single Metrics may back any number of registries.
func (m *Metrics) Collector() prometheus.Collector {
	return &metricsCollector{
		m: m,
		evaluationsTotal: prometheus.NewDesc(
			"guideline_evaluations_total",
			"Total number of evaluation passes.",
			nil, nil),
		rulesEvaluated: prometheus.NewDesc(
			"guideline_rules_evaluated_total",
			"Total number of rules evaluated across all passes.",
			nil, nil),
		matchesTotal: prometheus.NewDesc(
			"guideline_matches_total",
			"Total number of matches produced.",
			nil, nil),
		evalSecondsTotal: prometheus.NewDesc(
			"guideline_evaluation_seconds_total",
			"Cumulative evaluation time in seconds.",
			nil, nil),
		parseErrorsTotal: prometheus.NewDesc(
			"guideline_parse_errors_total",
			"Total number of rejected documents by failure tier.",
			[]string{"tier"}, nil),
		descendantCache: prometheus.NewDesc(
			"guideline_descendant_cache_lookups_total",
			"Descendant-lookup cache results.",
			[]string{"result"}, nil),
	}
}

type metricsCollector struct {
	m *Metrics

	evaluationsTotal *prometheus.Desc
	rulesEvaluated   *prometheus.Desc
	matchesTotal     *prometheus.Desc
	evalSecondsTotal *prometheus.Desc
	parseErrorsTotal *prometheus.Desc
	descendantCache  *prometheus.Desc
}

func (c *metricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.evaluationsTotal
	ch <- c.rulesEvaluated
	ch <- c.matchesTotal
	ch <- c.evalSecondsTotal
	ch <- c.parseErrorsTotal
	ch <- c.descendantCache
}

func (c *metricsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.evaluationsTotal, prometheus.CounterValue, float64(s.EvaluationsTotal))
	ch <- prometheus.MustNewConstMetric(c.rulesEvaluated, prometheus.CounterValue, float64(s.RulesEvaluated))
	ch <- prometheus.MustNewConstMetric(c.matchesTotal, prometheus.CounterValue, float64(s.MatchesTotal))
	ch <- prometheus.MustNewConstMetric(c.evalSecondsTotal, prometheus.CounterValue, s.EvalTimeTotal.Seconds())
	ch <- prometheus.MustNewConstMetric(c.parseErrorsTotal, prometheus.CounterValue, float64(s.SyntaxErrorsTotal), "syntax")
	ch <- prometheus.MustNewConstMetric(c.parseErrorsTotal, prometheus.CounterValue, float64(s.SchemaErrorsTotal), "schema")
	ch <- prometheus.MustNewConstMetric(c.descendantCache, prometheus.CounterValue, float64(s.DescendantCacheHits), "hit")
	ch <- prometheus.MustNewConstMetric(c.descendantCache, prometheus.CounterValue, float64(s.DescendantCacheMisses), "miss")
}

package guidelinematcher

import "runtime"

// Option configures the engine.
type Option func(*Options)

// Options holds all engine configuration.
type Options struct {
	// MaxMatches caps the number of matches returned by one evaluation.
	// 0 means unlimited (the full ranked list); truncation for display is
	// normally a presentation concern.
	MaxMatches int

	// WorkerCount is the number of goroutines used by batch evaluation.
	WorkerCount int

	// CollectMetrics enables per-evaluation metrics recording.
	CollectMetrics bool

	// MetricsSink, when non-nil, is the Metrics instance the engine records
	// into instead of creating its own.
	MetricsSink *Metrics
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxMatches:     0, // unlimited
		WorkerCount:    runtime.NumCPU(),
		CollectMetrics: true,
	}
}

// WithMaxMatches caps the number of matches returned per evaluation.
// Use 0 for unlimited.
func WithMaxMatches(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxMatches = n
		}
	}
}

// WithWorkerCount sets the number of workers for batch evaluation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithMetrics enables or disables metrics collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}

// WithMetricsSink directs recording into an externally owned Metrics.
// Sharing one instance with a terminology lookup recorder puts engine and
// store counters behind a single collector.
func WithMetricsSink(m *Metrics) Option {
	return func(o *Options) {
		o.MetricsSink = m
	}
}

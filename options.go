package kdtree

import (
	"context"
	"time"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures tree construction.
//
// Geometry (bounds, maximum angle) is not an option: it is a required
// constructor argument.
type Option func(*options)

// WithLogger sets the logger used for build and query events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after every build and query.
//
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: NoopLogger()}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// observer reports builds and queries of one tree to its logger and collector.
type observer struct {
	kind    string
	logger  *Logger
	metrics MetricsCollector
}

func newObserver(kind string, o options) observer {
	return observer{kind: kind, logger: o.logger, metrics: o.metricsCollector}
}

func (ob *observer) built(count, depth int, start time.Time, err error) {
	d := time.Since(start)
	ob.logger.LogBuild(context.Background(), ob.kind, count, depth, d, err)
	if ob.metrics != nil {
		ob.metrics.RecordBuild(ob.kind, count, d, err)
	}
}

// begin returns the query start time, or the zero time when no collector
// is attached.
func (ob *observer) begin() time.Time {
	if ob.metrics == nil {
		return time.Time{}
	}
	return time.Now()
}

func (ob *observer) searched(k, results int, start time.Time, err error) {
	ob.logger.LogSearch(context.Background(), ob.kind, k, results, err)
	if ob.metrics != nil {
		ob.metrics.RecordSearch(ob.kind, k, results, time.Since(start), err)
	}
}

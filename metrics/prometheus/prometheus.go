// Package prometheus exports kdtree build and query metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/kdtree"
)

const (
	opBuild  = "build"
	opSearch = "search"
)

// Collector implements kdtree.MetricsCollector on Prometheus metrics.
type Collector struct {
	latency *prometheus.HistogramVec
	points  *prometheus.CounterVec
	results *prometheus.CounterVec
	misses  *prometheus.CounterVec
}

var _ kdtree.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg.
// If reg is nil, prometheus.DefaultRegisterer is used. namespace prefixes
// every metric name and may be empty.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kdtree_operation_latency_seconds",
			Help:      "Latency of kd-tree builds and queries",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "kind", "status"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kdtree_points_indexed_total",
			Help:      "Total points stored by successful builds",
		}, []string{"kind"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kdtree_search_results_total",
			Help:      "Total points returned by queries",
		}, []string{"kind"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kdtree_search_misses_total",
			Help:      "Total successful queries that found nothing in range",
		}, []string{"kind"}),
	}

	for _, m := range []prometheus.Collector{c.latency, c.points, c.results, c.misses} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordBuild implements kdtree.MetricsCollector.
func (c *Collector) RecordBuild(kind string, count int, duration time.Duration, err error) {
	c.latency.WithLabelValues(opBuild, kind, status(err)).Observe(duration.Seconds())
	if err == nil {
		c.points.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordSearch implements kdtree.MetricsCollector.
func (c *Collector) RecordSearch(kind string, _, results int, duration time.Duration, err error) {
	c.latency.WithLabelValues(opSearch, kind, status(err)).Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.results.WithLabelValues(kind).Add(float64(results))
	if results == 0 {
		c.misses.WithLabelValues(kind).Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Package metrics exposes Prometheus counters for create page routing.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors, registered on their own registry so tests
// and multiple apps in one process don't collide.
type Metrics struct {
	Registry *prometheus.Registry

	outcomes   *prometheus.CounterVec
	storeCheck *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "createpage_submissions_total",
				Help: "Create page form submissions by outcome",
			},
			[]string{"outcome"},
		),
		storeCheck: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "createpage_store_check_duration_seconds",
				Help:    "Page existence check latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"result"},
		),
	}
}

// RecordOutcome counts one form submission under the given outcome label.
func (m *Metrics) RecordOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

// PageChecker is the existence check being timed.
type PageChecker interface {
	PageExists(ctx context.Context, title *wiki.Title) (bool, error)
}

type timedPageChecker struct {
	next    PageChecker
	metrics *Metrics
}

// TimePageChecker wraps next so every existence check is observed.
func (m *Metrics) TimePageChecker(next PageChecker) PageChecker {
	return &timedPageChecker{next: next, metrics: m}
}

func (c *timedPageChecker) PageExists(ctx context.Context, title *wiki.Title) (bool, error) {
	start := time.Now()
	exists, err := c.next.PageExists(ctx, title)

	result := "missing"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
	case err != nil:
		result = "error"
	case exists:
		result = "exists"
	}
	c.metrics.storeCheck.WithLabelValues(result).Observe(time.Since(start).Seconds())

	return exists, err
}

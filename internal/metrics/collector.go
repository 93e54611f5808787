// Package metrics provides internal metrics collection for the resolution
// pipeline and the job poller.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector aggregates the pipeline counters. A nil *Collector is a valid
// no-op collector, so components can carry one unconditionally.
type Collector struct {
	resolutionsTotal     *prometheus.CounterVec
	repairsTotal         prometheus.Counter
	parseFailuresTotal   prometheus.Counter
	classificationsTotal *prometheus.CounterVec
	pollAttemptsTotal    prometheus.Counter
	pollOutcomesTotal    *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector creates a collector registered on reg. The subsystem keeps
// per-component collectors (resolver, poller) from colliding on one registry.
// A nil reg falls back to the default registerer.
func NewCollector(namespace, subsystem string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.resolutionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "resolutions_total",
			Help:      "Output resolutions by outcome (ok, parsing_error, validation_error).",
		},
		[]string{"outcome"},
	)

	c.repairsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "repairs_total",
			Help:      "Raw payloads that failed strict parsing and went through repair.",
		},
	)

	c.parseFailuresTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "parse_failures_total",
			Help:      "Payloads that failed strict parsing even after repair.",
		},
	)

	c.classificationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_errors_total",
			Help:      "Classified upstream provider errors.",
		},
		[]string{"provider", "error_type"},
	)

	c.pollAttemptsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "poll_attempts_total",
			Help:      "Remote job status polls issued.",
		},
	)

	c.pollOutcomesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "poll_outcomes_total",
			Help:      "Terminal poll outcomes (completed, failed, timed_out).",
		},
		[]string{"state"},
	)

	return c
}

// Resolution records a resolution outcome.
func (c *Collector) Resolution(outcome string) {
	if c == nil {
		return
	}
	c.resolutionsTotal.WithLabelValues(outcome).Inc()
}

// Repair records a repair-path invocation.
func (c *Collector) Repair() {
	if c == nil {
		return
	}
	c.repairsTotal.Inc()
}

// ParseFailure records a payload that stayed unparseable after repair.
func (c *Collector) ParseFailure() {
	if c == nil {
		return
	}
	c.parseFailuresTotal.Inc()
}

// Classification records a classified provider error.
func (c *Collector) Classification(provider, errorType string) {
	if c == nil {
		return
	}
	c.classificationsTotal.WithLabelValues(provider, errorType).Inc()
}

// PollAttempt records one status poll.
func (c *Collector) PollAttempt() {
	if c == nil {
		return
	}
	c.pollAttemptsTotal.Inc()
}

// PollOutcome records a terminal poll state.
func (c *Collector) PollOutcome(state string) {
	if c == nil {
		return
	}
	c.pollOutcomesTotal.WithLabelValues(state).Inc()
}

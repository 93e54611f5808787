package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector("structcast", "test", prometheus.NewRegistry(), zap.NewNop())
}

func TestCollector_Resolution(t *testing.T) {
	c := newTestCollector(t)

	c.Resolution("ok")
	c.Resolution("ok")
	c.Resolution("validation_error")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.resolutionsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.resolutionsTotal.WithLabelValues("validation_error")))
}

func TestCollector_RepairAndParseFailure(t *testing.T) {
	c := newTestCollector(t)

	c.Repair()
	c.Repair()
	c.ParseFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.repairsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.parseFailuresTotal))
}

func TestCollector_Classification(t *testing.T) {
	c := newTestCollector(t)

	c.Classification("openai", "rate_limit")
	c.Classification("openai", "rate_limit")
	c.Classification("anthropic", "overloaded")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.classificationsTotal.WithLabelValues("openai", "rate_limit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.classificationsTotal.WithLabelValues("anthropic", "overloaded")))
}

func TestCollector_Poll(t *testing.T) {
	c := newTestCollector(t)

	c.PollAttempt()
	c.PollAttempt()
	c.PollAttempt()
	c.PollOutcome("completed")

	assert.Equal(t, float64(3), testutil.ToFloat64(c.pollAttemptsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.pollOutcomesTotal.WithLabelValues("completed")))
}

func TestCollector_NilIsNoOp(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.Resolution("ok")
		c.Repair()
		c.ParseFailure()
		c.Classification("p", "unknown")
		c.PollAttempt()
		c.PollOutcome("failed")
	})
}

func TestCollector_SeparateSubsystemsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	assert.NotPanics(t, func() {
		NewCollector("structcast", "resolve", reg, zap.NewNop())
		NewCollector("structcast", "poll", reg, zap.NewNop())
	})
}

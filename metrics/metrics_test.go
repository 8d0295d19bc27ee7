// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAggregation("radio", "pie", time.Millisecond)
	m.ObserveAggregation("radio", "pie", time.Millisecond)
	m.AggregationFailed("signature")
	m.ObserveReport("week", 12)
	m.ObserveRequest("GET /results", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.aggregations.WithLabelValues("radio", "pie")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aggregationErrors.WithLabelValues("signature")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("week")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /results", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAggregation("radio", "pie", time.Millisecond)
		m.AggregationFailed("radio")
		m.ObserveReport("all", 0)
		m.ObserveRequest("GET /health", 200, time.Millisecond)
	})
}

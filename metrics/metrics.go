// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickly_tally"

// Metrics holds the service's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	aggregations        *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	aggregationErrors   *prometheus.CounterVec
	reports             *prometheus.CounterVec
	filteredResponses   prometheus.Histogram
	requests            *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		aggregations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregations_total",
				Help:      "Question aggregations computed, by question type and view.",
			},
			[]string{"type", "view"},
		),
		aggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Time spent aggregating one question.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"type"},
		),
		aggregationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregation_errors_total",
				Help:      "Questions skipped because they could not be aggregated.",
			},
			[]string{"type"},
		),
		reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Full result reports built, by date range.",
			},
			[]string{"date_range"},
		),
		filteredResponses: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_responses",
				Help:      "Responses left after filtering, per report.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served, by route and status code.",
			},
			[]string{"route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

func (m *Metrics) ObserveAggregation(questionType, view string, d time.Duration) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(questionType, view).Inc()
	m.aggregationDuration.WithLabelValues(questionType).Observe(d.Seconds())
}

func (m *Metrics) AggregationFailed(questionType string) {
	if m == nil {
		return
	}
	m.aggregationErrors.WithLabelValues(questionType).Inc()
}

func (m *Metrics) ObserveReport(dateRange string, responses int) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(dateRange).Inc()
	m.filteredResponses.Observe(float64(responses))
}

// ObserveRequest records one served request. route is the mux pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Conversion metrics
	Conversions    *prometheus.CounterVec
	Normalizations *prometheus.CounterVec
	OfferOutcomes  *prometheus.CounterVec
	RateTableLoads *prometheus.CounterVec
	RateTableSize  prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bft_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bft_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bft_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bft_conversions_total",
				Help: "Currency conversions by resolution path",
			},
			[]string{"path"},
		),
		Normalizations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bft_normalizations_total",
				Help: "Transaction normalizations by outcome (complete or partial when a figure is null)",
			},
			[]string{"outcome"},
		),
		OfferOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bft_conversion_offers_total",
				Help: "Conversion offers by outcome",
			},
			[]string{"outcome"},
		),
		RateTableLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bft_rate_table_loads_total",
				Help: "Rate table loads by result",
			},
			[]string{"result"},
		),
		RateTableSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bft_rate_table_size",
			Help: "Number of stored directional rates in the last loaded table",
		}),
	}
}

// ObserveConversion counts a conversion by its resolution path. Safe on a nil receiver.
func (m *Metrics) ObserveConversion(path string) {
	if m == nil {
		return
	}
	m.Conversions.WithLabelValues(path).Inc()
}

// ObserveNormalization counts a normalization; partial means at least one figure was null.
func (m *Metrics) ObserveNormalization(partial bool) {
	if m == nil {
		return
	}
	outcome := "complete"
	if partial {
		outcome = "partial"
	}
	m.Normalizations.WithLabelValues(outcome).Inc()
}

// ObserveOffer counts an offer event: presented, no_rate, accepted or declined.
func (m *Metrics) ObserveOffer(outcome string) {
	if m == nil {
		return
	}
	m.OfferOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveRateTableLoad records a rate table load result and, on success, the table size.
func (m *Metrics) ObserveRateTableLoad(size int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RateTableLoads.WithLabelValues("error").Inc()
		return
	}
	m.RateTableLoads.WithLabelValues("ok").Inc()
	m.RateTableSize.Set(float64(size))
}

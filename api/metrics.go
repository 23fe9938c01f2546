package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
	finalPrice   prometheus.Histogram
	rateFailures prometheus.Counter
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landed_cost",
			Name:      "calculations_total",
			Help:      "Price calculations by tariff band and outcome.",
		}, []string{"band", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "landed_cost",
			Name:      "calculation_duration_seconds",
			Help:      "Time spent serving a price calculation, including rate lookup.",
			Buckets:   prometheus.DefBuckets,
		}),
		finalPrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "landed_cost",
			Name:      "final_price_kzt",
			Help:      "Distribution of computed final prices.",
			Buckets:   prometheus.ExponentialBuckets(10000, 4, 8),
		}),
		rateFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "landed_cost",
			Name:      "rate_fetch_failures_total",
			Help:      "Exchange-rate fetches that returned an error.",
		}),
	}

	m.registry.MustRegister(
		m.calculations,
		m.duration,
		m.finalPrice,
		m.rateFailures,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Simplici0/clinicprice/internal/pricing"
)

type metrics struct {
	computations *prometheus.CounterVec
	duration     prometheus.Histogram
	underpriced  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinicprice_price_computations_total",
			Help: "Service price computations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clinicprice_price_computation_seconds",
			Help:    "Time spent composing a single service price.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		underpriced: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clinicprice_portfolio_underpriced_services",
			Help: "Underpriced services in the latest price list.",
		}),
	}
	reg.MustRegister(m.computations, m.duration, m.underpriced)
	return m
}

func (m *metrics) observe(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = pricing.ErrorKind(err)
	}
	m.computations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

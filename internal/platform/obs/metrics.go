package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service's Prometheus collectors.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PointFetches    *prometheus.CounterVec
	Recomputes      prometheus.Counter
	Points          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cybermap",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cybermap",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		PointFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cybermap",
			Name:      "point_fetches_total",
			Help:      "Point source fetches by outcome.",
		}, []string{"outcome"}),
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cybermap",
			Name:      "ranking_recomputes_total",
			Help:      "Ranking passes triggered by input changes.",
		}),
		Points: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cybermap",
			Name:      "points",
			Help:      "Size of the current point set.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Requests, m.RequestDuration, m.PointFetches, m.Recomputes, m.Points)
	}
	return m
}

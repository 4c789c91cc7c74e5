package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics of the HTTP provider.
type Metrics struct {
	// Broadcast metrics
	BroadcastsTotal   prometheus.Counter
	BroadcastsSuccess prometheus.Counter
	BroadcastsFail    *prometheus.CounterVec

	// Request timing
	BroadcastDuration prometheus.Histogram
}

// NewMetrics initializes and registers provider metrics on the default
// registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers provider metrics with a
// custom registry. Tests pass their own registry to avoid duplicate
// registration panics.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		BroadcastsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocket_broadcasts_total",
			Help: "Total number of transaction broadcast attempts",
		}),
		BroadcastsSuccess: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocket_broadcasts_success_total",
			Help: "Total number of broadcasts accepted by the node",
		}),
		BroadcastsFail: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pocket_broadcasts_fail_total",
			Help: "Total number of failed broadcasts by reason",
		}, []string{"reason"}),
		BroadcastDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pocket_broadcast_duration_seconds",
			Help:    "Wall time of broadcast round trips",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

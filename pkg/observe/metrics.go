package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "city_weather"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	// Upstream weather API calls.
	UpstreamRequests *prometheus.CounterVec   // labels: operation={weather,forecast}, outcome={success,upstream_error,transport_error}
	UpstreamDuration *prometheus.HistogramVec // labels: operation

	// Bulk refresh.
	RefreshCities   *prometheus.CounterVec // labels: outcome={updated,failed,unmatched}
	RefreshDuration prometheus.Histogram

	CitiesAdded prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.RefreshCities,
		m.RefreshDuration,
		m.CitiesAdded,
	)

	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Weather API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		RefreshCities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cities_total",
			Help:      "Cities processed by bulk refreshes, by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a bulk refresh of one user's cities.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CitiesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cities_added_total",
			Help:      "Cities added to user lists.",
		}),
	}
}

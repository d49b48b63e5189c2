package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: outcome={fire,no_fire,error}
	PredictionDuration prometheus.Histogram

	NewsFetches *prometheus.CounterVec // labels: result={hit,miss,error}

	LoginAttempts *prometheus.CounterVec // labels: outcome={success,failure}
	Signups       *prometheus.CounterVec // labels: outcome={success,duplicate,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Predictions,
		m.PredictionDuration,
		m.NewsFetches,
		m.LoginAttempts,
		m.Signups,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forestguard",
			Name:      "predictions_total",
			Help:      "Prediction pipeline runs by outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forestguard",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a full scale-classify-regress cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		NewsFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forestguard",
			Name:      "news_fetches_total",
			Help:      "News feed lookups by cache result.",
		}, []string{"result"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forestguard",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		Signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forestguard",
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		}, []string{"outcome"}),
	}
}

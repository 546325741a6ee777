package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "heat_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: tier={Low,Moderate,High}
	PredictionErrors   *prometheus.CounterVec // labels: kind={invalid_input,artifact_mismatch,internal}
	PredictionDuration prometheus.Histogram
	PredictedScore     prometheus.Histogram

	// Score cache lookups.
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss,error}

	ArtifactsLoaded prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Completed predictions by risk tier.",
		}, []string{"tier"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Rejected or failed predictions by error kind.",
		}, []string{"kind"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time from form submission to classified result.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		PredictedScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predicted_score",
			Help:      "Predicted heat-related mortality rate per 100k.",
			Buckets:   []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 50, 75},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Score cache lookups by result.",
		}, []string{"result"}),
		ArtifactsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifacts_loaded",
			Help:      "1 when the model and scaler are loaded and aligned, 0 otherwise.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.PredictionDuration,
		m.PredictedScore,
		m.CacheLookups,
		m.ArtifactsLoaded,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Prediction metrics
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fembalance_predictions_total",
			Help: "Total number of prediction requests",
		},
		[]string{"model", "status"}, // status: success|invalid_input|error
	)

	PredictionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fembalance_prediction_duration_seconds",
			Help:    "Prediction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"model"},
	)

	PredictionConfidence = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fembalance_prediction_confidence",
			Help:    "Confidence score distribution of predictions",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
		[]string{"model"},
	)

	// Cache metrics
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fembalance_cache_hits_total",
			Help: "Prediction cache hits and misses",
		},
		[]string{"model", "result"}, // result: hit|miss
	)

	// Model state
	ModelLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fembalance_model_loaded",
			Help: "Whether a model bundle is loaded and trained (1) or not (0)",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(Predictions)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(PredictionConfidence)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(ModelLoaded)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordPrediction records a completed prediction call
func RecordPrediction(model string, duration time.Duration, confidence float64, status string) {
	Predictions.WithLabelValues(model, status).Inc()
	PredictionDuration.WithLabelValues(model).Observe(duration.Seconds())
	if status == "success" {
		PredictionConfidence.WithLabelValues(model).Observe(confidence)
	}
}

// RecordCacheLookup records a cache lookup result
func RecordCacheLookup(model string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheHits.WithLabelValues(model, result).Inc()
}

// SetModelLoaded records whether a model bundle is ready
func SetModelLoaded(model string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1.0
	}
	ModelLoaded.WithLabelValues(model).Set(v)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hvac"

// Recorder records prediction and dependency metrics using Prometheus.
type Recorder struct {
	predictions      *prometheus.CounterVec
	failures         *prometheus.CounterVec
	weatherLatency   *prometheus.HistogramVec
	inferenceLatency prometheus.Histogram
}

// New creates a recorder registered on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Total number of prediction requests by outcome",
			},
			[]string{"outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "prediction_failures_total",
				Help:      "Total number of failed prediction requests by failure kind",
			},
			[]string{"kind"},
		),
		weatherLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "weather_fetch_duration_seconds",
				Help:      "Duration of weather provider calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		inferenceLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "inference_duration_seconds",
				Help:      "Duration of model inference in seconds",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
	}
}

// RecordPrediction counts a finished request; outcome is "success" or "failure".
func (r *Recorder) RecordPrediction(outcome string) {
	r.predictions.WithLabelValues(outcome).Inc()
}

// RecordFailure counts a failed request under its failure kind.
func (r *Recorder) RecordFailure(kind string) {
	r.failures.WithLabelValues(kind).Inc()
}

// RecordWeatherLatency records a provider call duration in seconds.
func (r *Recorder) RecordWeatherLatency(provider string, seconds float64) {
	r.weatherLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordInferenceLatency records a model evaluation duration in seconds.
func (r *Recorder) RecordInferenceLatency(seconds float64) {
	r.inferenceLatency.Observe(seconds)
}

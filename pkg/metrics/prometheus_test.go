package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordPrediction("success")
	r.RecordPrediction("success")
	r.RecordPrediction("failure")
	r.RecordFailure("weather_unavailable")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.predictions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.predictions.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("weather_unavailable")))

	expected := `
# HELP hvac_prediction_failures_total Total number of failed prediction requests by failure kind
# TYPE hvac_prediction_failures_total counter
hvac_prediction_failures_total{kind="weather_unavailable"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "hvac_prediction_failures_total"))
}

func TestRecorder_Histograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordWeatherLatency("weatherstack", 0.2)
	r.RecordWeatherLatency("weatherstack", 0.4)
	r.RecordInferenceLatency(0.001)

	count, err := testutil.GatherAndCount(reg, "hvac_weather_fetch_duration_seconds", "hvac_inference_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "hvac_weather_fetch_duration_seconds" {
			h := mf.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(2), h.GetSampleCount())
			assert.InDelta(t, 0.6, h.GetSampleSum(), 1e-9)
		}
	}
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}

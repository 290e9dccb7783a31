package features

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-load-api/internal/models"
)

var (
	testTimestamp = time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	testSample    = models.WeatherSample{
		Timestamp:          testTimestamp,
		Temperature:        30,
		RelativeHumidity:   70,
		WetBulbTemperature: 26.5,
	}
)

func TestAssemble_FollowsSchemaOrder(t *testing.T) {
	metrics := map[string]float64{"CHWS_Setpoint": 6.5, "Chillers_Online": 2}

	orders := [][]string{
		{"year", "month", "day", "hour", "minute", "weekday", "Temperature", "RH", "WBT_C", "Hotel_Occupancy", "CHWS_Setpoint", "Chillers_Online"},
		{"Chillers_Online", "WBT_C", "Hotel_Occupancy", "weekday", "CHWS_Setpoint", "Temperature", "hour", "RH", "year", "minute", "day", "month"},
	}

	for _, order := range orders {
		record, err := Assemble(testSample, testTimestamp, 1, 85, metrics, order)
		require.NoError(t, err)
		assert.Equal(t, order, record.Names())

		got := record.Map()
		assert.Equal(t, 2024.0, got["year"])
		assert.Equal(t, 3.0, got["month"])
		assert.Equal(t, 5.0, got["day"])
		assert.Equal(t, 14.0, got["hour"])
		assert.Equal(t, 0.0, got["minute"])
		assert.Equal(t, 1.0, got["weekday"])
		assert.Equal(t, 30.0, got["Temperature"])
		assert.Equal(t, 70.0, got["RH"])
		assert.Equal(t, 26.5, got["WBT_C"])
		assert.Equal(t, 85.0, got["Hotel_Occupancy"])
		assert.Equal(t, 6.5, got["CHWS_Setpoint"])
		assert.Equal(t, 2.0, got["Chillers_Online"])
	}
}

func TestAssemble_DropsExtraNames(t *testing.T) {
	metrics := map[string]float64{"Unused": 42}

	record, err := Assemble(testSample, testTimestamp, 1, 85, metrics, []string{"Temperature", "Hotel_Occupancy"})
	require.NoError(t, err)

	assert.Equal(t, 2, record.Len())
	assert.Equal(t, []float64{30, 85}, record.Values())
	_, ok := record.Get("Unused")
	assert.False(t, ok)
}

func TestAssemble_MissingFeature(t *testing.T) {
	order := []string{"Temperature", "CHWS_Setpoint", "Pump_Speed"}

	record, err := Assemble(testSample, testTimestamp, 1, 85, map[string]float64{}, order)
	require.Error(t, err)

	assert.True(t, errors.Is(err, models.ErrMissingFeature))
	var missingErr *models.MissingFeatureError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"CHWS_Setpoint", "Pump_Speed"}, missingErr.Names)
	assert.Equal(t, 0, record.Len())
}

func TestAssemble_DerivedValuesOverwriteMetrics(t *testing.T) {
	metrics := map[string]float64{
		"Temperature":     -99,
		"hour":            3,
		"Hotel_Occupancy": 10,
	}

	record, err := Assemble(testSample, testTimestamp, 1, 85, metrics, []string{"Temperature", "hour", "Hotel_Occupancy"})
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 14, 85}, record.Values())
}

func TestAssemble_DoesNotMutateMetrics(t *testing.T) {
	metrics := map[string]float64{"CHWS_Setpoint": 6.5}

	_, err := Assemble(testSample, testTimestamp, 1, 85, metrics, []string{"CHWS_Setpoint"})
	require.NoError(t, err)
	assert.Len(t, metrics, 1)
}

func TestIsDerived(t *testing.T) {
	assert.True(t, IsDerived("WBT_C"))
	assert.True(t, IsDerived("weekday"))
	assert.False(t, IsDerived("CHWS_Setpoint"))
}

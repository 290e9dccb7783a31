package features

import (
	"time"

	"hvac-load-api/internal/models"
)

// Derived feature names, as the load model was trained with them.
const (
	Year           = "year"
	Month          = "month"
	Day            = "day"
	Hour           = "hour"
	Minute         = "minute"
	Weekday        = "weekday"
	Temperature    = "Temperature"
	RH             = "RH"
	WetBulb        = "WBT_C"
	HotelOccupancy = "Hotel_Occupancy"
)

// Derived lists every feature the service computes itself. Any other schema
// name must come from the request's operational metrics.
var Derived = []string{Year, Month, Day, Hour, Minute, Weekday, Temperature, RH, WetBulb, HotelOccupancy}

// IsDerived reports whether name is computed by Assemble rather than supplied by the caller.
func IsDerived(name string) bool {
	for _, d := range Derived {
		if d == name {
			return true
		}
	}
	return false
}

// Assemble merges operational metrics, time features, weather features and
// occupancy (later groups overwrite earlier ones) and lays the result out in
// order. Names outside order are dropped. If any name in order is missing,
// a *models.MissingFeatureError is returned with an empty record.
func Assemble(
	sample models.WeatherSample,
	ts time.Time,
	weekday int,
	occupancy float64,
	metrics map[string]float64,
	order []string,
) (models.FeatureRecord, error) {
	merged := make(map[string]float64, len(metrics)+len(Derived))
	for name, v := range metrics {
		merged[name] = v
	}

	merged[Year] = float64(ts.Year())
	merged[Month] = float64(ts.Month())
	merged[Day] = float64(ts.Day())
	merged[Hour] = float64(ts.Hour())
	merged[Minute] = float64(ts.Minute())
	merged[Weekday] = float64(weekday)

	merged[Temperature] = sample.Temperature
	merged[RH] = sample.RelativeHumidity
	merged[WetBulb] = sample.WetBulbTemperature

	merged[HotelOccupancy] = occupancy

	var missing []string
	values := make([]float64, 0, len(order))
	for _, name := range order {
		v, ok := merged[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		values = append(values, v)
	}
	if len(missing) > 0 {
		return models.FeatureRecord{}, &models.MissingFeatureError{Names: missing}
	}

	return models.NewFeatureRecord(order, values), nil
}

package models

import "time"

const HoursPerDay = 24

// WeatherSample is the weather observation representing one requested hour window.
type WeatherSample struct {
	Timestamp          time.Time `json:"timestamp"`
	Temperature        float64   `json:"temperature"`
	RelativeHumidity   float64   `json:"relative_humidity"`
	WetBulbTemperature float64   `json:"wet_bulb_temperature"`
}

// WetBulb estimates the wet-bulb temperature with the linear approximation the
// load model was trained on: T - (RH/100)*5.
func WetBulb(temperature, relativeHumidity float64) float64 {
	return temperature - (relativeHumidity/100)*5
}

// HourlySeries repeats a single reading across every hour of date.
func HourlySeries(date time.Time, reading WeatherReading) []WeatherSample {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	wetBulb := WetBulb(reading.Temperature, reading.RelativeHumidity)

	series := make([]WeatherSample, 0, HoursPerDay)
	for i := 0; i < HoursPerDay; i++ {
		series = append(series, WeatherSample{
			Timestamp:          start.Add(time.Duration(i) * time.Hour),
			Temperature:        reading.Temperature,
			RelativeHumidity:   reading.RelativeHumidity,
			WetBulbTemperature: wetBulb,
		})
	}

	return series
}

// FilterByHourWindow returns the index of the first sample whose hour lies in
// [startHour, endHour), or -1 if not found
func FilterByHourWindow(series []WeatherSample, startHour, endHour int) int {
	for i, s := range series {
		if h := s.Timestamp.Hour(); h >= startHour && h < endHour {
			return i
		}
	}
	return -1
}

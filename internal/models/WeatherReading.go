package models

import "fmt"

// WeatherReading is a single "current conditions" observation returned by a provider.
type WeatherReading struct {
	Provider         string  `json:"provider" example:"weatherstack"`
	Location         string  `json:"location" example:"Singapore"`
	Temperature      float64 `json:"temperature" example:"30"`
	RelativeHumidity float64 `json:"relative_humidity" example:"70"`
	ObservedAt       string  `json:"observed_at,omitempty" example:"02:30 PM"`
}

func (r *WeatherReading) RequestParams() string {
	return fmt.Sprintf("provider: %s location: %s", r.Provider, r.Location)
}

package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// PredictionRequest is a validated /predict payload.
type PredictionRequest struct {
	City               string
	Date               time.Time
	StartHour          int
	HotelOccupancy     float64
	OperationalMetrics map[string]float64
}

// EndHour is the exclusive end of the single-hour window the request covers.
func (r PredictionRequest) EndHour() int {
	return r.StartHour + 1
}

// Weekday returns the request date's weekday with Monday=0 and Sunday=6.
func (r PredictionRequest) Weekday() int {
	return MondayFirstWeekday(r.Date)
}

func (r PredictionRequest) RequestParams() string {
	return fmt.Sprintf("city: %s date: %s hours: %d-%d", r.City, r.Date.Format(DateLayout), r.StartHour, r.EndHour())
}

func MondayFirstWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

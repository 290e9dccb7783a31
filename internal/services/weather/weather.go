package weather

import (
	"context"
	"fmt"
	"time"

	"hvac-load-api/internal/models"
	"hvac-load-api/internal/repositories"
	"hvac-load-api/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// LatencyRecorder receives the duration of every provider call.
type LatencyRecorder interface {
	RecordWeatherLatency(provider string, seconds float64)
}

// Sampler turns a provider's current reading into the sample for one hour window.
type Sampler struct {
	repo    repositories.WeatherRepository
	timeout time.Duration
	metrics LatencyRecorder
	l       *logger.Logger
}

func NewSampler(repo repositories.WeatherRepository, timeout time.Duration, metrics LatencyRecorder, l *logger.Logger) *Sampler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Sampler{
		repo:    repo,
		timeout: timeout,
		metrics: metrics,
		l:       l,
	}
}

// Sample fetches the current conditions for location, spreads them across the
// 24 hours of date and returns the first sample in [startHour, endHour).
func (s *Sampler) Sample(ctx context.Context, location string, date time.Time, startHour, endHour int) (models.WeatherSample, error) {
	s.l.Debug("sampling weather", map[string]any{
		"provider":  s.repo.Name(),
		"location":  location,
		"date":      date.Format(models.DateLayout),
		"startHour": startHour,
		"endHour":   endHour,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	reading, err := s.repo.CurrentConditions(ctx, location)
	if s.metrics != nil {
		s.metrics.RecordWeatherLatency(s.repo.Name(), time.Since(started).Seconds())
	}
	if err != nil {
		s.l.Warning("failed to fetch current conditions", map[string]any{
			"provider": s.repo.Name(),
			"location": location,
			"err":      err.Error(),
		})
		return models.WeatherSample{}, fmt.Errorf("%w: %s: %v", models.ErrWeatherUnavailable, s.repo.Name(), err)
	}

	series := models.HourlySeries(date, reading)
	idx := models.FilterByHourWindow(series, startHour, endHour)
	if idx < 0 {
		return models.WeatherSample{}, fmt.Errorf("%w: no sample in hours [%d, %d)", models.ErrWindowEmpty, startHour, endHour)
	}

	sample := series[idx]
	s.l.Info("weather sampled", map[string]any{
		"provider":    s.repo.Name(),
		"location":    reading.Location,
		"timestamp":   sample.Timestamp,
		"temperature": sample.Temperature,
		"humidity":    sample.RelativeHumidity,
		"wetBulb":     sample.WetBulbTemperature,
	})

	return sample, nil
}

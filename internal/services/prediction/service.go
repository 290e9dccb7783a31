package prediction

import (
	"context"
	"time"

	"hvac-load-api/internal/models"
	"hvac-load-api/internal/services/features"
	"hvac-load-api/pkg/logger"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type WeatherSampler interface {
	Sample(ctx context.Context, location string, date time.Time, startHour, endHour int) (models.WeatherSample, error)
}

type LoadPredictor interface {
	ExpectedFeatureOrder() []string
	Predict(record models.FeatureRecord) (models.PredictionResult, error)
}

type Metrics interface {
	RecordPrediction(outcome string)
	RecordFailure(kind string)
	RecordInferenceLatency(seconds float64)
}

// Service runs one prediction: sample weather, assemble features, evaluate the model.
type Service struct {
	sampler   WeatherSampler
	predictor LoadPredictor
	metrics   Metrics
	l         *logger.Logger
}

func NewService(sampler WeatherSampler, predictor LoadPredictor, metrics Metrics, l *logger.Logger) *Service {
	return &Service{
		sampler:   sampler,
		predictor: predictor,
		metrics:   metrics,
		l:         l,
	}
}

// Predict returns the load prediction for the hour starting at req.StartHour.
// Errors wrap one of the models sentinels so callers can classify them.
func (s *Service) Predict(ctx context.Context, req models.PredictionRequest) ([]models.PredictionResult, error) {
	s.l.Info("starting prediction", map[string]any{
		"params": req.RequestParams(),
	})

	sample, err := s.sampler.Sample(ctx, req.City, req.Date, req.StartHour, req.EndHour())
	if err != nil {
		return nil, s.fail(req, err)
	}

	record, err := features.Assemble(
		sample,
		sample.Timestamp,
		req.Weekday(),
		req.HotelOccupancy,
		req.OperationalMetrics,
		s.predictor.ExpectedFeatureOrder(),
	)
	if err != nil {
		return nil, s.fail(req, err)
	}

	s.l.Debug("assembled features", map[string]any{
		"features": record.Map(),
	})

	started := time.Now()
	result, err := s.predictor.Predict(record)
	if s.metrics != nil {
		s.metrics.RecordInferenceLatency(time.Since(started).Seconds())
	}
	if err != nil {
		return nil, s.fail(req, err)
	}

	if s.metrics != nil {
		s.metrics.RecordPrediction(OutcomeSuccess)
	}
	s.l.Info("prediction completed", map[string]any{
		"params": req.RequestParams(),
		"RT":     result.RT,
	})

	return []models.PredictionResult{result}, nil
}

// RecordInvalid counts a request rejected before it reached the service.
func (s *Service) RecordInvalid() {
	if s.metrics != nil {
		s.metrics.RecordPrediction(OutcomeFailure)
		s.metrics.RecordFailure(models.KindInvalidRequest)
	}
}

func (s *Service) fail(req models.PredictionRequest, err error) error {
	kind := models.ErrorKind(err)
	if s.metrics != nil {
		s.metrics.RecordPrediction(OutcomeFailure)
		s.metrics.RecordFailure(kind)
	}
	s.l.Error(err, map[string]any{
		"kind":   kind,
		"params": req.RequestParams(),
	})
	return err
}

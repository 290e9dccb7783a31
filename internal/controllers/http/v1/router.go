package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hvac-load-api/internal/models"
	"hvac-load-api/internal/predictor"
	"hvac-load-api/pkg/logger"
)

type PredictionService interface {
	Predict(ctx context.Context, req models.PredictionRequest) ([]models.PredictionResult, error)
	RecordInvalid()
}

// RouterOptions holds the optional surfaces. A nil Gatherer disables /metrics.
type RouterOptions struct {
	MetricsPath string
	Gatherer    prometheus.Gatherer
}

type routes struct {
	service PredictionService
	model   predictor.Info
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	service PredictionService,
	model predictor.Info,
	l *logger.Logger,
	opts RouterOptions,
) {
	r := &routes{
		service: service,
		model:   model,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	if opts.Gatherer != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// API routes
	app.Post("/predict", r.handlePredict)
	app.Get("/model", r.handleModelInfo)
}

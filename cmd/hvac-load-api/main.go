package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hvac-load-api/config"
	_ "hvac-load-api/docs"
	v1 "hvac-load-api/internal/controllers/http/v1"
	"hvac-load-api/internal/predictor"
	"hvac-load-api/internal/repositories"
	"hvac-load-api/internal/services/features"
	"hvac-load-api/internal/services/prediction"
	"hvac-load-api/internal/services/weather"
	"hvac-load-api/pkg/httpserver"
	"hvac-load-api/pkg/logger"
	"hvac-load-api/pkg/metrics"
	"hvac-load-api/pkg/observe"
)

// @title HVAC Load API
// @version 1.0.0
// @description Predicts hourly chiller plant load parameters from live weather, hotel occupancy and operational metrics.
// @termsOfService http://swagger.io/terms/

// @contact.name HVAC Load API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Prediction
// @tag.description Chiller plant load prediction
// @tag.name Model
// @tag.description Loaded model introspection
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.ReportsErrors(), 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(cnf.App.Name, writers...).WithEnv(cnf.App.Env)
	if hook != nil {
		hook.SetLogger(l)
	}
	if err := l.SetLevel(cnf.Log.Level); err != nil {
		l.Fatal("invalid log level", map[string]any{"level": cnf.Log.Level, "err": err.Error()})
	}

	model, err := predictor.Load(cnf.Model.Path)
	if err != nil {
		l.Fatal("cannot load model", map[string]any{"path": cnf.Model.Path, "err": err.Error()})
	}
	modelInfo := model.Info(features.IsDerived)
	l.Info("model loaded", map[string]any{
		"path":       cnf.Model.Path,
		"type":       modelInfo.ModelType,
		"features":   len(modelInfo.FeatureNames),
		"estimators": modelInfo.Estimators,
	})

	repo, err := repositories.InitWeatherRepository(cnf, l, &http.Client{Timeout: cnf.Weather.Timeout})
	if err != nil {
		l.Fatal("cannot init weather repository", map[string]any{"err": err.Error()})
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	sampler := weather.NewSampler(repo, cnf.Weather.Timeout, recorder, l)

	service := prediction.NewService(sampler, model, recorder, l)

	var ready atomic.Bool
	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server, ready.Load)

	routerOpts := v1.RouterOptions{MetricsPath: cnf.Metrics.Path}
	if cnf.Metrics.Enabled {
		routerOpts.Gatherer = registry
	}
	v1.NewRouter(
		app,
		service,
		modelInfo,
		l,
		routerOpts,
	)
	ready.Store(true)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"provider": repo.Name(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		ready.Store(false)
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cnf.Server.ShutdownTimeout)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

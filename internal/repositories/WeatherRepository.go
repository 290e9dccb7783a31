package repositories

import (
	"context"
	"fmt"
	"net/http"

	"hvac-load-api/config"
	"hvac-load-api/internal/models"
	"hvac-load-api/pkg/logger"
)

// WeatherRepository fetches the current conditions for a named location.
type WeatherRepository interface {
	Name() string
	CurrentConditions(ctx context.Context, location string) (models.WeatherReading, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// InitWeatherRepository builds the provider selected in cfg.
func InitWeatherRepository(cfg *config.Config, l *logger.Logger, httpClient HTTPClient) (WeatherRepository, error) {
	api, found := cfg.SelectedWeatherAPI()
	if !found {
		return nil, fmt.Errorf("weather provider %q is not configured", cfg.Weather.Provider)
	}

	switch api.Name {
	case config.ProviderWeatherstack:
		return NewWeatherstackRepository(api.BaseURL, api.APIKey, l, httpClient)
	case config.ProviderOpenMeteo:
		return NewOpenMeteoRepository(api.BaseURL, api.GeocodingURL, l, httpClient), nil
		// Add more cases for new providers to extend the app
	}

	return nil, fmt.Errorf("unknown weather provider %q", api.Name)
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"hvac-load-api/internal/models"
	"hvac-load-api/pkg/logger"
)

const (
	WeatherstackBaseURL = "http://api.weatherstack.com/current"
)

type WeatherstackRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewWeatherstackRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*WeatherstackRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = WeatherstackBaseURL
	}

	return &WeatherstackRepository{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (w *WeatherstackRepository) Name() string {
	return "weatherstack"
}

// WeatherstackResponse covers both the success and the error payload; the
// provider reports failures with HTTP 200 and "success": false.
type WeatherstackResponse struct {
	Success *bool `json:"success,omitempty"`
	Error   *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
	Location *struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location,omitempty"`
	Current *struct {
		ObservationTime string   `json:"observation_time"`
		Temperature     *float64 `json:"temperature"`
		Humidity        *float64 `json:"humidity"`
	} `json:"current,omitempty"`
}

func (w *WeatherstackRepository) CurrentConditions(ctx context.Context, location string) (models.WeatherReading, error) {
	reading := models.WeatherReading{
		Provider: w.Name(),
		Location: location,
	}

	// Validate API key before making request
	if strings.TrimSpace(w.APIKey) == "" {
		return reading, errors.New("API key cannot be empty")
	}

	query := url.Values{}
	query.Set("access_key", w.APIKey)
	query.Set("query", location)
	query.Set("units", "m")

	w.l.Info("making weatherstack API request", map[string]any{
		"params": reading.RequestParams(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return reading, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return reading, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	w.l.Info("received weatherstack API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return reading, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return reading, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response WeatherstackResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return reading, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if response.Error != nil || (response.Success != nil && !*response.Success) {
		if response.Error == nil {
			return reading, errors.New("API error: request unsuccessful")
		}
		return reading, fmt.Errorf("API error (code %d, %s): %s", response.Error.Code, response.Error.Type, response.Error.Info)
	}

	if response.Current == nil {
		return reading, errors.New("no current conditions in response")
	}
	if response.Current.Temperature == nil || response.Current.Humidity == nil {
		return reading, errors.New("current conditions lack temperature or humidity")
	}

	reading.Temperature = *response.Current.Temperature
	reading.RelativeHumidity = *response.Current.Humidity
	reading.ObservedAt = response.Current.ObservationTime
	if response.Location != nil && response.Location.Name != "" {
		reading.Location = response.Location.Name
	}

	w.l.Debug("parsed API response", map[string]any{
		"location":    reading.Location,
		"temperature": reading.Temperature,
		"humidity":    reading.RelativeHumidity,
	})

	return reading, nil
}

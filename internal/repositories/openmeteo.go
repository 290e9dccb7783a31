package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"hvac-load-api/internal/models"
	"hvac-load-api/pkg/logger"
)

const (
	OpenMeteoBaseURL      = "https://api.open-meteo.com/v1/forecast"
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

// OpenMeteoRepository resolves the city with the geocoding API and then asks
// the forecast API for the current temperature and humidity.
type OpenMeteoRepository struct {
	BaseURL      string
	GeocodingURL string
	httpClient   HTTPClient
	l            *logger.Logger
}

func NewOpenMeteoRepository(baseURL, geocodingURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	if geocodingURL == "" {
		geocodingURL = OpenMeteoGeocodingURL
	}

	return &OpenMeteoRepository{
		BaseURL:      baseURL,
		GeocodingURL: geocodingURL,
		httpClient:   httpClient,
		l:            l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoGeocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
	} `json:"results"`
}

type OpenMeteoCurrentResponse struct {
	Current *struct {
		Time               string   `json:"time"`
		Temperature2m      *float64 `json:"temperature_2m"`
		RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
	} `json:"current"`
}

type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func (o *OpenMeteoRepository) CurrentConditions(ctx context.Context, location string) (models.WeatherReading, error) {
	reading := models.WeatherReading{
		Provider: o.Name(),
		Location: location,
	}

	o.l.Info("making openmeteo API request", map[string]any{
		"params": reading.RequestParams(),
	})

	geoQuery := url.Values{}
	geoQuery.Set("name", location)
	geoQuery.Set("count", "1")

	var geo OpenMeteoGeocodingResponse
	if err := o.getJSON(ctx, o.GeocodingURL+"?"+geoQuery.Encode(), &geo); err != nil {
		return reading, fmt.Errorf("geocoding: %w", err)
	}
	if len(geo.Results) == 0 {
		return reading, fmt.Errorf("geocoding: no match for %q", location)
	}

	place := geo.Results[0]
	currentQuery := url.Values{}
	currentQuery.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', 4, 64))
	currentQuery.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', 4, 64))
	currentQuery.Set("current", "temperature_2m,relative_humidity_2m")

	var current OpenMeteoCurrentResponse
	if err := o.getJSON(ctx, o.BaseURL+"?"+currentQuery.Encode(), &current); err != nil {
		return reading, fmt.Errorf("current conditions: %w", err)
	}

	if current.Current == nil || current.Current.Temperature2m == nil || current.Current.RelativeHumidity2m == nil {
		return reading, fmt.Errorf("current conditions lack temperature or humidity")
	}

	reading.Temperature = *current.Current.Temperature2m
	reading.RelativeHumidity = *current.Current.RelativeHumidity2m
	reading.ObservedAt = current.Current.Time
	if place.Name != "" {
		reading.Location = place.Name
	}

	o.l.Debug("parsed API response", map[string]any{
		"location":    reading.Location,
		"lat":         place.Latitude,
		"lon":         place.Longitude,
		"temperature": reading.Temperature,
		"humidity":    reading.RelativeHumidity,
	})

	return reading, nil
}

func (o *OpenMeteoRepository) getJSON(ctx context.Context, target string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for HTTP error status codes
	if resp.StatusCode != http.StatusOK {
		var errorResp OpenMeteoErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Reason)
		}
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"

	ProviderWeatherstack = "weatherstack"
	ProviderOpenMeteo    = "open-meteo"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Weather WeatherConfig `yaml:"weather"`
	Model   ModelConfig   `yaml:"model"`
	Log     LogConfig     `yaml:"log"`
	Sentry  SentryConfig  `yaml:"sentry"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	BodyLimit       int           `yaml:"body_limit" split_words:"true"`
}

// WeatherConfig selects one provider out of APIs. APIKey, when set, overrides
// the selected provider's key so secrets can stay out of the YAML file.
type WeatherConfig struct {
	Provider string             `yaml:"provider"`
	Timeout  time.Duration      `yaml:"timeout"`
	APIKey   string             `yaml:"api_key,omitempty" split_words:"true"`
	APIs     []WeatherAPIConfig `yaml:"apis" ignored:"true"`
}

type WeatherAPIConfig struct {
	Name         string `yaml:"name"`
	BaseURL      string `yaml:"base_url"`
	GeocodingURL string `yaml:"geocoding_url,omitempty"`
	APIKey       string `yaml:"api_key,omitempty"`
}

type ModelConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads a YAML file and then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// NewConfig loads the configuration from CONFIG_PATH (or the default path).
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "hvac-load-api",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			BodyLimit:       1024 * 1024,
		},
		Weather: WeatherConfig{
			Provider: ProviderWeatherstack,
			Timeout:  10 * time.Second,
		},
		Model: ModelConfig{
			Path: "model/chiller_load_model.json",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	// Read from YAML file first
	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile overlays the YAML file on top of cnf. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if strings.TrimSpace(config.App.Name) == "" {
		return errors.New("app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if config.Server.ReadTimeout <= 0 || config.Server.WriteTimeout <= 0 || config.Server.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if config.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}

	switch config.Weather.Provider {
	case ProviderWeatherstack, ProviderOpenMeteo:
	default:
		return fmt.Errorf("weather.provider must be '%s' or '%s', got '%s'", ProviderWeatherstack, ProviderOpenMeteo, config.Weather.Provider)
	}

	api, found := config.SelectedWeatherAPI()
	if !found {
		return fmt.Errorf("weather.apis has no entry for provider '%s'", config.Weather.Provider)
	}
	if strings.TrimSpace(api.BaseURL) == "" {
		return fmt.Errorf("weather.apis[%s].base_url is required", api.Name)
	}
	if api.Name == ProviderWeatherstack && strings.TrimSpace(api.APIKey) == "" {
		return errors.New("weather.api_key is required for weatherstack")
	}
	if api.Name == ProviderOpenMeteo && strings.TrimSpace(api.GeocodingURL) == "" {
		return errors.New("weather.apis[open-meteo].geocoding_url is required")
	}

	if strings.TrimSpace(config.Model.Path) == "" {
		return errors.New("model.path is required")
	}
	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level is invalid: %w", err)
	}
	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return errors.New("metrics.path must start with '/'")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

// ReportsErrors tells whether error-level logs go to Sentry: deployed
// environments only.
func (c *Config) ReportsErrors() bool {
	return c.IsProduction() || c.App.Env == "dev" || c.App.Env == "staging"
}

func (c *Config) GetWeatherAPIByName(name string) (*WeatherAPIConfig, bool) {
	for i := range c.Weather.APIs {
		if c.Weather.APIs[i].Name == name {
			return &c.Weather.APIs[i], true
		}
	}
	return nil, false
}

// SelectedWeatherAPI returns a copy of the configured provider entry with the
// top-level API key override applied.
func (c *Config) SelectedWeatherAPI() (WeatherAPIConfig, bool) {
	api, found := c.GetWeatherAPIByName(c.Weather.Provider)
	if !found {
		return WeatherAPIConfig{}, false
	}

	selected := *api
	if c.Weather.APIKey != "" {
		selected.APIKey = c.Weather.APIKey
	}
	return selected, true
}

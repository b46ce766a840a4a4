package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Tracing exporters.
const (
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeatherMap live conditions.
	WeatherAPIKey  string
	WeatherEnabled bool
	WeatherTimeout time.Duration
	WeatherBaseURL string

	// Analysis event publishing.
	EventsEnabled      bool
	KafkaBrokers       []string
	KafkaAnalysisTopic string

	Tracing TracingConfig
}

// TracingConfig configures the OpenTelemetry tracer provider.
type TracingConfig struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	SampleRatio float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("WEATHER_TIMEOUT", "5s"))
	if err != nil || weatherTimeout <= 0 {
		return nil, errors.New("invalid WEATHER_TIMEOUT")
	}

	weatherBaseURL := sharedcfg.EnvOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	if u, err := url.Parse(weatherBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid WEATHER_BASE_URL")
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	weatherEnabled := apiKey != ""
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	tracing, err := loadTracing()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherAPIKey:  apiKey,
		WeatherEnabled: weatherEnabled,
		WeatherTimeout: weatherTimeout,
		WeatherBaseURL: weatherBaseURL,

		EventsEnabled:      os.Getenv("ANALYSIS_EVENTS_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAnalysisTopic: sharedcfg.EnvOrDefault("KAFKA_ANALYSIS_TOPIC", "hazard-analyses"),

		Tracing: tracing,
	}

	if cfg.WeatherEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}
	if cfg.EventsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when ANALYSIS_EVENTS_ENABLED is true")
		}
		if cfg.KafkaAnalysisTopic == "" {
			return nil, errors.New("KAFKA_ANALYSIS_TOPIC is required when ANALYSIS_EVENTS_ENABLED is true")
		}
	}

	return cfg, nil
}

func loadTracing() (TracingConfig, error) {
	tc := TracingConfig{
		Enabled:  os.Getenv("TRACING_ENABLED") == "true",
		Exporter: sharedcfg.EnvOrDefault("TRACING_EXPORTER", TracingExporterStdout),
		Endpoint: os.Getenv("TRACING_ENDPOINT"),
	}

	ratio, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("TRACING_SAMPLE_RATIO", "1.0"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return tc, errors.New("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}
	tc.SampleRatio = ratio

	switch tc.Exporter {
	case TracingExporterStdout:
	case TracingExporterOTLP:
		if tc.Enabled && tc.Endpoint == "" {
			return tc, errors.New("TRACING_ENDPOINT is required for the otlp exporter")
		}
	default:
		return tc, fmt.Errorf("invalid TRACING_EXPORTER %q: want stdout or otlp", tc.Exporter)
	}
	return tc, nil
}

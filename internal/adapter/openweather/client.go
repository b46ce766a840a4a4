package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
	"github.com/couchcryptid/hazard-analysis-service/internal/observability"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client implements domain.WeatherProvider using the OpenWeatherMap current weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentConditions fetches the current weather at a coordinate, in metric units.
func (c *Client) CurrentConditions(ctx context.Context, at domain.Coordinates) (domain.WeatherReading, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(at.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(at.Lon, 'f', -1, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	start := time.Now()
	reading, err := c.doRequest(ctx, c.baseURL+"/weather?"+params.Encode())
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.WeatherReading{}, err
	}
	c.metrics.WeatherRequests.WithLabelValues("success").Inc()
	c.logger.Debug("weather fetched", "lat", at.Lat, "lon", at.Lon, "temp", reading.Temperature)
	return reading, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.WeatherReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherReading{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherReading{}, fmt.Errorf("openweathermap API error: status %d: %s", resp.StatusCode, body)
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return domain.WeatherReading{}, fmt.Errorf("decode response: %w", err)
	}
	if owm.Main == nil {
		return domain.WeatherReading{}, errors.New("decode response: missing main block")
	}
	return owm.reading(), nil
}

// OpenWeatherMap API response types.

type response struct {
	Main       *mainBlock         `json:"main"`
	Wind       wind               `json:"wind"`
	Rain       map[string]float64 `json:"rain"`
	Clouds     clouds             `json:"clouds"`
	Visibility float64            `json:"visibility"` // metres
	Weather    []condition        `json:"weather"`
}

type mainBlock struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

type wind struct {
	Speed float64 `json:"speed"` // m/s
}

type clouds struct {
	All float64 `json:"all"`
}

type condition struct {
	Description string `json:"description"`
}

func (r response) reading() domain.WeatherReading {
	out := domain.WeatherReading{
		Temperature: r.Main.Temp,
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		WindSpeed:   r.Wind.Speed * 3.6,
		Rainfall:    r.Rain["1h"],
		Visibility:  r.Visibility / 1000,
		CloudCover:  r.Clouds.All,
	}
	if len(r.Weather) > 0 {
		out.Description = r.Weather[0].Description
	}
	return out
}

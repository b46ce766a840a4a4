package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock weather provider ---

type mockWeather struct {
	reading WeatherReading
	err     error
	calls   int
}

func (m *mockWeather) CurrentConditions(_ context.Context, _ Coordinates) (WeatherReading, error) {
	m.calls++
	return m.reading, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var keralaBaseline = ClimateBaseline{TempBase: 28, RainfallBase: 2800, Humidity: 85, WindSpeed: 8}

// --- environment ---

func TestObserveEnvironment_Live(t *testing.T) {
	weather := &mockWeather{reading: WeatherReading{
		Temperature: 31.2, Humidity: 80, WindSpeed: 14.4, Rainfall: 2.5,
		Pressure: 1008, Visibility: 8, CloudCover: 75, Description: "light rain",
	}}
	coords := &Coordinates{Lat: 10.8505, Lon: 76.2711}

	env := ObserveEnvironment(context.Background(), "Kerala", coords, keralaBaseline, weather, fixedRand(0), discardLogger())

	assert.True(t, env.IsLive)
	assert.Equal(t, 31.2, env.Temperature)
	assert.Equal(t, 2.5, env.Rainfall)
	assert.Equal(t, "light rain", env.Description)
	assert.Equal(t, 50, env.AirQuality)
	assert.Equal(t, 20, env.SoilMoisture)
	assert.Equal(t, 3, env.UVIndex)
	assert.Equal(t, 1, weather.calls)
}

func TestObserveEnvironment_ProviderErrorFallsBack(t *testing.T) {
	weather := &mockWeather{err: errors.New("status 401")}
	coords := &Coordinates{Lat: 10.8505, Lon: 76.2711}

	env := ObserveEnvironment(context.Background(), "Kerala", coords, keralaBaseline, weather, fixedRand(0.5), discardLogger())

	assert.False(t, env.IsLive)
	assert.Equal(t, 28.0, env.Temperature)
	assert.Equal(t, 2800.0, env.Rainfall)
	assert.Equal(t, 85.0, env.Humidity)
	assert.Equal(t, 8.0, env.WindSpeed)
	assert.Equal(t, 1, weather.calls, "no retry after failure")
}

func TestObserveEnvironment_NoCoordinatesSkipsProvider(t *testing.T) {
	weather := &mockWeather{}
	env := ObserveEnvironment(context.Background(), "Atlantis", nil, keralaBaseline, weather, fixedRand(0.5), discardLogger())

	assert.False(t, env.IsLive)
	assert.Equal(t, 0, weather.calls)
}

func TestObserveEnvironment_NilProvider(t *testing.T) {
	coords := &Coordinates{Lat: 1, Lon: 1}
	env := ObserveEnvironment(context.Background(), "Kerala", coords, keralaBaseline, nil, nil, discardLogger())
	assert.False(t, env.IsLive)
}

func TestSimulateEnvironment_Bounds(t *testing.T) {
	humid := ClimateBaseline{TempBase: 20, RainfallBase: 2500, Humidity: 94, WindSpeed: 1}

	low := SimulateEnvironment(humid, fixedRand(0))
	assert.Equal(t, 17.0, low.Temperature)
	assert.Equal(t, 2400.0, low.Rainfall)
	assert.Equal(t, 89.0, low.Humidity)
	assert.Equal(t, 2.0, low.WindSpeed, "wind floored at 2")
	assert.Equal(t, 10.0, low.Visibility)

	high := SimulateEnvironment(humid, fixedRand(0.999))
	assert.LessOrEqual(t, high.Humidity, 95.0)
	assert.Less(t, high.AirQuality, 250)
	assert.Less(t, high.SoilMoisture, 100)
	assert.LessOrEqual(t, high.UVIndex, 10)
	assert.LessOrEqual(t, high.Visibility, 24.0)
}

// --- risk overview ---

func TestAssessRisks_NeutralWeatherKeepsBaseline(t *testing.T) {
	profile := RiskProfile{Flood: 65, Drought: 30, Cyclone: 45, Earthquake: 15, Heatwave: 40, Landslide: 55}
	env := EnvironmentalReading{Temperature: 30, Rainfall: 1000, Humidity: 70, WindSpeed: 12}

	// rand 0.5: earthquake +0, landslide (1000-1500)/300 + 0 = -1.67
	scores := AssessRisks(profile, env, fixedRand(0.5))

	assert.Equal(t, 65, scores[Flood].Score)
	assert.Equal(t, 30, scores[Drought].Score)
	assert.Equal(t, 45, scores[Cyclone].Score)
	assert.Equal(t, 15, scores[Earthquake].Score)
	assert.Equal(t, 40, scores[Heatwave].Score)
	assert.Equal(t, 53, scores[Landslide].Score)
	assert.Equal(t, RiskHigh, scores[Flood].Level)
}

func TestAssessRisks_ClampedTo5And95(t *testing.T) {
	profile := RiskProfile{Flood: 94, Drought: 6, Cyclone: 90, Earthquake: 94, Heatwave: 3, Landslide: 94}
	env := EnvironmentalReading{Temperature: 10, Rainfall: 5000, Humidity: 95, WindSpeed: 60}

	scores := AssessRisks(profile, env, fixedRand(0.999))
	for kind, s := range scores {
		assert.GreaterOrEqual(t, s.Score, 5, kind)
		assert.LessOrEqual(t, s.Score, 95, kind)
	}
	assert.Equal(t, 95, scores[Flood].Score)
	assert.Equal(t, 5, scores[Heatwave].Score)
	assert.Len(t, scores, len(HazardKinds))
}

// --- trends ---

type calendarStub map[int]map[time.Month]bool

func (c calendarStub) HadDisaster(year int, _ HazardKind, _ string, m time.Month) bool {
	return c[year][m]
}

func TestHistoricalTrends(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	calendar := calendarStub{2024: {time.July: true}}
	points := HistoricalTrends("Kerala", Landslide, RiskProfile{Landslide: 55}, calendar, fixedRand(0))

	require.Len(t, points, 36)
	assert.Equal(t, "Jan 2022", points[0].Period)
	assert.Equal(t, 0, points[0].Month)
	assert.Equal(t, "Dec 2024", points[35].Period)

	july2024 := points[24+6]
	assert.Equal(t, "Jul 2024", july2024.Period)
	assert.Equal(t, 80, july2024.Risk) // 55 + 25
	assert.True(t, july2024.HasRealEvent)

	july2023 := points[12+6]
	assert.Equal(t, 67, july2023.Risk) // monsoon 55 + 12
	assert.False(t, july2023.HasRealEvent)

	jan2023 := points[12]
	assert.Equal(t, 47, jan2023.Risk) // 55 - 8

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Risk, 5)
		assert.LessOrEqual(t, p.Risk, 95)
	}
}

func TestHistoricalTrends_DefaultBase(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	points := HistoricalTrends("Nowhere", Earthquake, nil, nil, fixedRand(0.5))
	require.Len(t, points, 36)
	for _, p := range points {
		assert.Equal(t, 40, p.Risk)
	}
}

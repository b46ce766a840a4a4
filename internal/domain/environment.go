package domain

import (
	"context"
	"log/slog"
	"math"
)

// EnvironmentalReading is the environmental snapshot shown for a state. Live
// readings come from the weather provider; the remaining fields are always
// simulated because no provider offers them.
type EnvironmentalReading struct {
	Temperature  float64 `json:"temperature"`
	Rainfall     float64 `json:"rainfall"`
	Humidity     float64 `json:"humidity"`
	WindSpeed    float64 `json:"windSpeed"`
	Pressure     float64 `json:"pressure,omitempty"`
	Visibility   float64 `json:"visibility"`
	CloudCover   float64 `json:"cloudCover,omitempty"`
	Description  string  `json:"description,omitempty"`
	AirQuality   int     `json:"airQuality"`
	SoilMoisture int     `json:"soilMoisture"`
	UVIndex      int     `json:"uvIndex"`
	IsLive       bool    `json:"isLive"`
}

// ObserveEnvironment returns live conditions when a provider and coordinates
// are available, and a simulated reading from the climate baseline otherwise.
// Provider failures are logged and fall back to simulation without retry.
func ObserveEnvironment(
	ctx context.Context,
	state string,
	coords *Coordinates,
	baseline ClimateBaseline,
	provider WeatherProvider,
	rnd RandSource,
	logger *slog.Logger,
) EnvironmentalReading {
	if rnd == nil {
		rnd = DefaultRand
	}
	if provider == nil || coords == nil {
		return SimulateEnvironment(baseline, rnd)
	}

	w, err := provider.CurrentConditions(ctx, *coords)
	if err != nil {
		logger.Warn("weather lookup failed, using simulated data",
			"state", state,
			"lat", coords.Lat,
			"lon", coords.Lon,
			"error", err,
		)
		return SimulateEnvironment(baseline, rnd)
	}

	return EnvironmentalReading{
		Temperature:  w.Temperature,
		Rainfall:     w.Rainfall,
		Humidity:     w.Humidity,
		WindSpeed:    w.WindSpeed,
		Pressure:     w.Pressure,
		Visibility:   w.Visibility,
		CloudCover:   w.CloudCover,
		Description:  w.Description,
		AirQuality:   randInt(rnd, 50, 200),
		SoilMoisture: randInt(rnd, 20, 80),
		UVIndex:      randInt(rnd, 3, 8),
		IsLive:       true,
	}
}

// SimulateEnvironment jitters a climate baseline into a plausible reading.
func SimulateEnvironment(b ClimateBaseline, rnd RandSource) EnvironmentalReading {
	return EnvironmentalReading{
		Temperature:  b.TempBase + (rnd.Float64()*6 - 3),
		Rainfall:     b.RainfallBase + (rnd.Float64()*200 - 100),
		Humidity:     clamp(b.Humidity+(rnd.Float64()*10-5), 30, 95),
		WindSpeed:    math.Max(2, b.WindSpeed+(rnd.Float64()*4-2)),
		AirQuality:   randInt(rnd, 50, 200),
		SoilMoisture: randInt(rnd, 20, 80),
		UVIndex:      randInt(rnd, 3, 8),
		Visibility:   float64(randInt(rnd, 10, 15)),
	}
}

// randInt returns an integer in [lo, lo+span).
func randInt(rnd RandSource, lo, span int) int {
	return lo + int(math.Floor(rnd.Float64()*float64(span)))
}

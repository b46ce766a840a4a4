package domain

import "context"

// WeatherReading contains current conditions returned by a weather provider.
type WeatherReading struct {
	Temperature float64 // °C
	Humidity    float64 // %
	WindSpeed   float64 // km/h
	Rainfall    float64 // mm, last hour
	Pressure    float64 // hPa
	Visibility  float64 // km
	CloudCover  float64 // %
	Description string
}

// WeatherProvider fetches live conditions for a coordinate.
type WeatherProvider interface {
	CurrentConditions(ctx context.Context, at Coordinates) (WeatherReading, error)
}

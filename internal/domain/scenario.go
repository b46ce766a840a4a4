package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Slider is a single scenario control value. On the wire it is accepted either
// as a bare number or as a one-element array ("[75]"), which is how the
// dashboard's slider widgets serialize it.
type Slider float64

// UnmarshalJSON accepts 75 or [75]. Empty or multi-element arrays are rejected.
func (s *Slider) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var values []float64
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("slider: %w", err)
		}
		if len(values) != 1 {
			return fmt.Errorf("slider: expected exactly one value, got %d", len(values))
		}
		*s = Slider(values[0])
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("slider: %w", err)
	}
	*s = Slider(v)
	return nil
}

// Scenario holds the user-adjustable simulation parameters.
type Scenario struct {
	Timeframe                 string `json:"timeframe"`
	Severity                  Slider `json:"severity"`
	Rainfall                  Slider `json:"rainfall"`    // % of normal
	Temperature               Slider `json:"temperature"` // % of normal
	WindSpeed                 Slider `json:"windSpeed"`   // km/h
	Duration                  Slider `json:"duration"`    // days
	Seasonality               string `json:"seasonality"`
	ClimateChange             bool   `json:"climateChange"`
	PopulationGrowth          Slider `json:"populationGrowth"`          // % of current population
	InfrastructureDevelopment Slider `json:"infrastructureDevelopment"` // % of current development
}

// DefaultScenario mirrors the dashboard's initial slider positions.
func DefaultScenario() Scenario {
	return Scenario{
		Timeframe:                 "1-year",
		Severity:                  75,
		Rainfall:                  100,
		Temperature:               100,
		WindSpeed:                 50,
		Duration:                  7,
		Seasonality:               "monsoon",
		ClimateChange:             true,
		PopulationGrowth:          110,
		InfrastructureDevelopment: 100,
	}
}

// Validate rejects negative or non-finite slider values.
func (s Scenario) Validate() error {
	sliders := []struct {
		name  string
		value Slider
	}{
		{"severity", s.Severity},
		{"rainfall", s.Rainfall},
		{"temperature", s.Temperature},
		{"windSpeed", s.WindSpeed},
		{"duration", s.Duration},
		{"populationGrowth", s.PopulationGrowth},
		{"infrastructureDevelopment", s.InfrastructureDevelopment},
	}
	for _, sl := range sliders {
		v := float64(sl.value)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidScenario, sl.name)
		}
	}
	return nil
}

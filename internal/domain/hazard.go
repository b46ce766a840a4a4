package domain

import "fmt"

// HazardKind identifies one of the disaster categories the dashboard offers.
type HazardKind string

const (
	Flood      HazardKind = "flood"
	Drought    HazardKind = "drought"
	Cyclone    HazardKind = "cyclone"
	Earthquake HazardKind = "earthquake"
	Heatwave   HazardKind = "heatwave"
	Landslide  HazardKind = "landslide"
)

// HazardKinds lists every hazard kind in display order.
var HazardKinds = []HazardKind{Flood, Drought, Cyclone, Earthquake, Heatwave, Landslide}

// ParseHazardKind validates a hazard identifier. Matching is exact.
func ParseHazardKind(s string) (HazardKind, error) {
	for _, k := range HazardKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedHazard, s)
}

// Scorable reports whether the scenario scorer has a model for the hazard.
func (k HazardKind) Scorable() bool {
	return k == Flood || k == Drought
}

// RiskLevel is the user-facing band for a 0-100 score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// LevelFor bands a score: <40 low, <60 moderate, <80 high, else critical.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskModerate
	default:
		return RiskLow
	}
}

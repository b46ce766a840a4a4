package domain

import "math"

// HazardScore is one entry of a state's risk overview.
type HazardScore struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// AssessRisks nudges a state's baseline profile by the current environmental
// reading. Adjustments are small (at most ±10 points) and every final score
// is held within [5, 95]. Earthquake risk ignores weather and only jitters.
func AssessRisks(profile RiskProfile, env EnvironmentalReading, rnd RandSource) map[HazardKind]HazardScore {
	if rnd == nil {
		rnd = DefaultRand
	}

	adjustments := map[HazardKind]float64{
		Flood:      clamp((env.Rainfall-1000)/200+(env.Humidity-70)/10, -10, 10),
		Drought:    clamp((env.Temperature-30)*2+(70-env.Humidity)/5, -10, 10),
		Cyclone:    clamp(env.WindSpeed-12+(env.Humidity-70)/8, -8, 8),
		Earthquake: rnd.Float64()*4 - 2,
		Heatwave:   clamp((env.Temperature-30)*3+(70-env.Humidity)/6, -10, 10),
		Landslide:  clamp((env.Rainfall-1500)/300+rnd.Float64()*3-1.5, -8, 8),
	}

	scores := make(map[HazardKind]HazardScore, len(HazardKinds))
	for _, kind := range HazardKinds {
		score := int(clamp(math.Round(float64(profile[kind])+adjustments[kind]), 5, 95))
		scores[kind] = HazardScore{Score: score, Level: LevelFor(score)}
	}
	return scores
}

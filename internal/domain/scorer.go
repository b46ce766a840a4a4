package domain

import (
	"math"
	"math/rand/v2"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it, so
// tests and the report CLI can pin a seeded generator.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand is the goroutine-safe process-wide random source.
var DefaultRand RandSource = globalRand{}

// climateChangeMultiplier scales risk when the climate-change toggle is on.
const climateChangeMultiplier = 1.15

// HazardScorer turns static GIS factors and a scenario into an AnalysisResult.
// The impact metrics carry random jitter; pass a seeded RandSource for
// reproducible output.
type HazardScorer struct {
	rand RandSource
}

// NewHazardScorer creates a scorer. A nil source falls back to DefaultRand.
func NewHazardScorer(src RandSource) *HazardScorer {
	if src == nil {
		src = DefaultRand
	}
	return &HazardScorer{rand: src}
}

// Score computes the analysis for a scorable hazard kind. Kinds other than
// Flood are scored with the drought model, so callers validate first.
func (s *HazardScorer) Score(state string, kind HazardKind, f GISFactors, sc Scenario) AnalysisResult {
	var base float64
	if kind == Flood {
		base = FloodRisk(f, sc)
	} else {
		base = DroughtRisk(f, sc)
	}
	risk := AdjustForClimate(base, sc.ClimateChange)
	riskScore := int(math.Floor(risk))

	return AnalysisResult{
		State:              state,
		HazardType:         kind,
		Scenario:           sc,
		RiskScore:          riskScore,
		RiskLevel:          LevelFor(riskScore),
		AffectedPopulation: s.affectedPopulation(risk, f.Population, sc),
		EconomicImpact:     s.economicImpact(risk, f.Infrastructure, sc),
		InfrastructureRisk: int(math.Floor(InfrastructureRisk(risk, sc))),
		EvacuationZones:    int(math.Floor(risk/100*100 + s.rand.Float64()*20)),
		ResponseTime:       max(2, int(math.Floor(24-f.Infrastructure/1000*12+s.rand.Float64()*6))),
		Confidence:         85 + s.rand.Float64()*15,
		ModelVersion:       ModelVersion,
		DataSources:        append([]string(nil), DataSources...),
		Timestamp:          clock.Now().UTC(),
	}
}

// FloodRisk is the weighted flood model: low elevation, heavy rainfall, river
// proximity, dry soil and long duration all raise risk. Result is in [0,100].
func FloodRisk(f GISFactors, sc Scenario) float64 {
	elevation := math.Max(0, (500-f.Elevation)/500) * 0.25
	rainfall := (float64(sc.Rainfall) / 100) * (f.Rainfall / 1000) * 0.3
	river := math.Max(0, (50-f.RiverProximity)/50) * 0.2
	soil := math.Max(0, (100-f.SoilMoisture)/100) * 0.15
	duration := math.Min(1, float64(sc.Duration)/10) * 0.1

	return clamp((elevation+rainfall+river+soil+duration)*100, 0, 100)
}

// DroughtRisk is the weighted drought model: rainfall deficit, temperature
// severity, soil moisture deficit, agricultural land share and duration.
func DroughtRisk(f GISFactors, sc Scenario) float64 {
	rainfall := math.Max(0, (1000-f.Rainfall)/1000) * 0.3
	temperature := (float64(sc.Temperature) / 100) * 0.25
	soil := math.Max(0, (60-f.SoilMoisture)/60) * 0.2
	landUse := (f.LandUse / 100) * 0.15
	duration := math.Min(1, float64(sc.Duration)/30) * 0.1

	return clamp((rainfall+temperature+soil+landUse+duration)*100, 0, 100)
}

// AdjustForClimate applies the climate-change multiplier and re-caps at 100.
func AdjustForClimate(risk float64, climateChange bool) float64 {
	if !climateChange {
		return risk
	}
	return clamp(risk*climateChangeMultiplier, 0, 100)
}

// InfrastructureRisk lowers risk with development and raises it with wind.
func InfrastructureRisk(risk float64, sc Scenario) float64 {
	development := float64(sc.InfrastructureDevelopment) / 100
	wind := float64(sc.WindSpeed) / 150
	return clamp(risk*(1-development*0.3)+wind*20, 0, 100)
}

func (s *HazardScorer) affectedPopulation(risk, population float64, sc Scenario) int64 {
	adjusted := population * float64(sc.PopulationGrowth) / 100
	return floorNonNegative(adjusted*(risk/100)*s.rand.Float64()*0.3 + adjusted*0.1)
}

func (s *HazardScorer) economicImpact(risk, infrastructure float64, sc Scenario) int64 {
	base := (risk / 100) * infrastructure * float64(sc.InfrastructureDevelopment) / 100
	return floorNonNegative(base * (s.rand.Float64()*50 + 25))
}

// floorNonNegative floors v into [0, MaxInt64]. Huge sliders can push the
// product past the int64 range.
func floorNonNegative(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

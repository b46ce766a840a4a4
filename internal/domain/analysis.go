package domain

import (
	"fmt"
	"time"
)

// ModelVersion tags every AnalysisResult with the scoring model revision.
const ModelVersion = "IHAP-2024.1"

// DataSources lists the agencies the reference tables are attributed to.
var DataSources = []string{"IMD", "ISRO", "Census", "NRSC"}

// AnalysisRequest is the body of an analyze call. Scenario is a pointer so an
// absent scenario can be told apart from a zero-valued one.
type AnalysisRequest struct {
	State      string    `json:"state"`
	HazardType string    `json:"hazardType"`
	Scenario   *Scenario `json:"scenario"`
}

// Validate checks required fields, the hazard kind, and scenario values.
// It returns the parsed hazard kind on success.
func (r AnalysisRequest) Validate() (HazardKind, error) {
	if r.State == "" || r.HazardType == "" || r.Scenario == nil {
		return "", ErrMissingField
	}
	kind, err := ParseHazardKind(r.HazardType)
	if err != nil {
		return "", err
	}
	if !kind.Scorable() {
		return "", fmt.Errorf("%w: scenario analysis supports flood and drought, got %q", ErrUnsupportedHazard, kind)
	}
	if err := r.Scenario.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// AnalysisResult is the derived, ephemeral output of one scenario analysis.
type AnalysisResult struct {
	State              string     `json:"state"`
	HazardType         HazardKind `json:"hazardType"`
	Scenario           Scenario   `json:"scenario"`
	RiskScore          int        `json:"riskScore"`
	RiskLevel          RiskLevel  `json:"riskLevel"`
	AffectedPopulation int64      `json:"affectedPopulation"`
	EconomicImpact     int64      `json:"economicImpact"`
	InfrastructureRisk int        `json:"infrastructureRisk"`
	EvacuationZones    int        `json:"evacuationZones"`
	ResponseTime       int        `json:"responseTime"` // hours
	Confidence         float64    `json:"confidence"`   // percent
	ModelVersion       string     `json:"modelVersion"`
	DataSources        []string   `json:"dataSources"`
	Timestamp          time.Time  `json:"timestamp"`
}

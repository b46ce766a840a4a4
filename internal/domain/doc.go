// Package domain models synthetic natural-hazard risk for Indian states.
//
// # Data
//
// Nothing here is measured. GIS factors, risk profiles and climate baselines
// are static reference tables (see package catalog); environmental readings
// are either fetched from a weather provider or simulated around a baseline.
//
// # Scenario scoring
//
// Flood and drought are the two hazards with a scenario model. Each is a
// weighted sum of five normalized terms, scaled to 0-100:
//
//	Flood:   elevation 0.25 | scenario×state rainfall 0.30 | river proximity 0.20
//	         soil moisture deficit 0.15 | duration (10 days = full) 0.10
//	Drought: rainfall deficit 0.30 | temperature severity 0.25
//	         soil moisture deficit 0.20 | agricultural land 0.15
//	         duration (30 days = full) 0.10
//
// The climate-change toggle multiplies the score by 1.15, capped at 100.
//
// Impact metrics (affected population, economic impact, evacuation zones,
// response time, confidence) multiply deterministic terms by uniform random
// jitter. The jitter has no statistical basis; it exists so repeated runs look
// different. Inject a seeded [RandSource] to make results reproducible.
//
// # Risk levels
//
//	<40 Low | <60 Moderate | <80 High | ≥80 Critical
//
// # Risk overview and trends
//
// The per-state overview starts from a baseline profile and applies small,
// bounded weather adjustments ([AssessRisks]); scores stay within 5-95.
// Historical trends ([HistoricalTrends]) replay three calendar years of
// seasonal patterns, with large bumps in months that had a recorded disaster.
package domain

package domain

import (
	"fmt"
	"math"
	"time"
)

// trendYears is how many calendar years (ending with the current one) a
// historical trend covers.
const trendYears = 3

// defaultTrendBase is used when a state's profile has no value for the hazard.
const defaultTrendBase = 40

// DisasterCalendar reports whether a recorded disaster of the given kind hit
// the state in the given month (1-12) of the given year.
type DisasterCalendar interface {
	HadDisaster(year int, kind HazardKind, state string, month time.Month) bool
}

// TrendPoint is one month of a historical risk trend.
type TrendPoint struct {
	Period       string `json:"period"` // e.g. "Jul 2024"
	Risk         int    `json:"risk"`
	Year         int    `json:"year"`
	Month        int    `json:"month"` // 0-based, matching the dashboard's chart axis
	HasRealEvent bool   `json:"hasRealEvent"`
}

// HistoricalTrends builds a monthly risk series for the current year and the
// two before it. Months with a recorded disaster get a large bump; the rest
// follow the hazard's seasonal pattern.
func HistoricalTrends(state string, kind HazardKind, profile RiskProfile, calendar DisasterCalendar, rnd RandSource) []TrendPoint {
	if rnd == nil {
		rnd = DefaultRand
	}
	base, ok := profile[kind]
	if !ok || base == 0 {
		base = defaultTrendBase
	}

	currentYear := clock.Now().Year()
	points := make([]TrendPoint, 0, trendYears*12)
	for year := currentYear - trendYears + 1; year <= currentYear; year++ {
		for m := time.January; m <= time.December; m++ {
			var adjustment float64
			if calendar != nil && calendar.HadDisaster(year, kind, state, m) {
				adjustment = 25 + rnd.Float64()*15
			} else {
				adjustment = seasonalAdjustment(kind, m, rnd)
			}

			risk := clamp(float64(base)+adjustment, 5, 95)
			points = append(points, TrendPoint{
				Period:       fmt.Sprintf("%s %d", m.String()[:3], year),
				Risk:         int(math.Round(risk)),
				Year:         year,
				Month:        int(m) - 1,
				HasRealEvent: adjustment > 20,
			})
		}
	}
	return points
}

// seasonalAdjustment returns the typical swing for a hazard in a month.
func seasonalAdjustment(kind HazardKind, m time.Month, rnd RandSource) float64 {
	between := func(from, to time.Month) bool { return m >= from && m <= to }
	r := rnd.Float64()

	switch kind {
	case Flood:
		// Monsoon, June to September.
		if between(time.June, time.September) {
			return 10 + r*10
		}
		return -5 - r*5
	case Drought:
		// Pre-monsoon, March to May.
		if between(time.March, time.May) {
			return 15 + r*10
		}
		return -8 - r*7
	case Cyclone:
		if between(time.April, time.June) || between(time.October, time.December) {
			return 15 + r*15
		}
		return -10 - r*5
	case Heatwave:
		if between(time.March, time.June) {
			return 20 + r*15
		}
		return -15 - r*10
	case Landslide:
		if between(time.June, time.September) {
			return 12 + r*8
		}
		return -8 - r*5
	case Earthquake:
		return r*6 - 3
	default:
		return 0
	}
}

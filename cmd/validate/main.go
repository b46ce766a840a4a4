// Command validate performs integrity checks on the hazard reference catalog:
// state coordinates, baseline risk profiles, detailed GIS profiles, the
// disaster calendar and the notable-event list. It checks the embedded catalog
// by default, or a YAML file given with -file, and exits non-zero on failure.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate -file internal/catalog/catalog.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/hazard-analysis-service/internal/catalog"
	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
)

// India's bounding box, with some slack for the island territories.
const (
	minLat, maxLat = 6.0, 37.5
	minLon, maxLon = 68.0, 97.5
)

// percentTolerance absorbs rounding in hand-authored percentage splits.
const percentTolerance = 0.5

// phase tracks pass/fail for a validation phase. Warnings are reported but
// never fail the run.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "catalog YAML to validate (defaults to the embedded catalog)")
	flag.Parse()

	os.Exit(run(*file, os.Stdout))
}

func run(path string, w io.Writer) int {
	fmt.Fprintln(w, "=== Hazard Catalog Integrity Validation ===")
	fmt.Fprintln(w)

	cat, err := load(path)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateCoordinates(cat),
		validateRiskProfiles(cat),
		validateGISProfiles(cat),
		validateDisasterCalendar(cat),
		validateNotableEvents(cat),
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		} else if len(p.warnings) > 0 {
			status = fmt.Sprintf("\033[33mPASS (%d warnings)\033[0m", len(p.warnings))
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Catalog: %d states, %d disaster entries, %d notable events\n",
		len(cat.States()), len(cat.Disasters()), len(cat.Events()))

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
		for _, warn := range p.warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func load(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return catalog.Parse(data)
}

// ── Phase 1: Coordinates ──
// A state without coordinates is always simulated, which is allowed but worth
// surfacing.

func validateCoordinates(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 1: Weather Coordinates"}

	for _, rec := range cat.Records() {
		c := rec.Coordinates
		if c == nil {
			p.warnf("%s: no coordinates, environment is always simulated", rec.Name)
			continue
		}
		if c.Lat < minLat || c.Lat > maxLat || c.Lon < minLon || c.Lon > maxLon {
			p.errorf("%s: coordinates (%.4f, %.4f) outside India", rec.Name, c.Lat, c.Lon)
		}
	}
	return p
}

// ── Phase 2: Risk Profiles ──

func validateRiskProfiles(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 2: Baseline Risk Profiles"}

	for _, rec := range cat.Records() {
		if len(rec.Risk) == 0 {
			p.errorf("%s: no risk profile", rec.Name)
			continue
		}
		checkRiskProfile(p, rec.Name, rec.Risk)
	}
	checkRiskProfile(p, "defaults", cat.RiskProfile(""))
	return p
}

func checkRiskProfile(p *phase, name string, profile domain.RiskProfile) {
	for kind, score := range profile {
		if _, err := domain.ParseHazardKind(string(kind)); err != nil {
			p.errorf("%s: unknown hazard %q in risk profile", name, kind)
		}
		if score < 0 || score > 100 {
			p.errorf("%s: %s score %d outside [0,100]", name, kind, score)
		}
	}
	for _, kind := range domain.HazardKinds {
		if _, ok := profile[kind]; !ok {
			p.errorf("%s: risk profile missing %s", name, kind)
		}
	}
}

// ── Phase 3: GIS Profiles ──
// Profiled states must also carry scoring factors, and the two must agree.

func validateGISProfiles(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 3: GIS Profiles"}

	for _, rec := range cat.Records() {
		if rec.GIS == nil {
			if rec.Factors != nil {
				p.warnf("%s: scoring factors without a GIS profile", rec.Name)
			}
			continue
		}
		g := rec.GIS
		if rec.Factors == nil {
			p.errorf("%s: GIS profile without scoring factors", rec.Name)
		} else {
			if rec.Factors.Elevation != g.Topography.Elevation.Avg {
				p.errorf("%s: factor elevation %.0f != GIS average %.0f",
					rec.Name, rec.Factors.Elevation, g.Topography.Elevation.Avg)
			}
			if int64(rec.Factors.Population) != g.Demographics.Population {
				p.errorf("%s: factor population %.0f != GIS population %d",
					rec.Name, rec.Factors.Population, g.Demographics.Population)
			}
		}

		checkRange(p, rec.Name, "elevation", g.Topography.Elevation)
		checkRange(p, rec.Name, "temperature", g.Climate.Temperature)

		if n := len(g.Climate.Rainfall.Seasonal); n != 4 {
			p.errorf("%s: %d seasonal rainfall values, want 4", rec.Name, n)
		}
		if n := len(g.Climate.Humidity.Seasonal); n != 4 {
			p.errorf("%s: %d seasonal humidity values, want 4", rec.Name, n)
		}

		lu := g.LandUse
		if sum := lu.Agriculture + lu.Forest + lu.Urban + lu.Water + lu.Barren; !nearHundred(sum) {
			p.errorf("%s: land use sums to %.1f%%", rec.Name, sum)
		}
		if sum := g.Demographics.Urban + g.Demographics.Rural; !nearHundred(sum) {
			p.errorf("%s: urban+rural population is %.1f%%", rec.Name, sum)
		}
	}
	return p
}

func checkRange(p *phase, state, field string, r domain.Range) {
	if r.Min > r.Avg || r.Avg > r.Max {
		p.errorf("%s: %s range min=%.1f avg=%.1f max=%.1f out of order", state, field, r.Min, r.Avg, r.Max)
	}
}

func nearHundred(v float64) bool {
	return math.Abs(v-100) <= percentTolerance
}

// ── Phase 4: Disaster Calendar ──
// Month bounds are already enforced by catalog.Parse.

func validateDisasterCalendar(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 4: Disaster Calendar"}

	type entry struct {
		year   int
		hazard domain.HazardKind
		state  string
	}
	seen := make(map[entry]bool)

	for _, d := range cat.Disasters() {
		label := fmt.Sprintf("%d/%s/%s", d.Year, d.Hazard, d.State)
		if !cat.Known(d.State) {
			p.errorf("%s: unknown state", label)
		}
		if _, err := domain.ParseHazardKind(string(d.Hazard)); err != nil {
			p.errorf("%s: unknown hazard", label)
		}
		if len(d.Months) == 0 {
			p.errorf("%s: no months listed", label)
		}
		sorted := slices.Clone(d.Months)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(d.Months) {
			p.errorf("%s: duplicate months %v", label, d.Months)
		}

		key := entry{d.Year, d.Hazard, d.State}
		if seen[key] {
			p.errorf("%s: listed more than once", label)
		}
		seen[key] = true
	}
	return p
}

// ── Phase 5: Notable Events ──

func validateNotableEvents(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 5: Notable Events"}

	for i, e := range cat.Events() {
		label := fmt.Sprintf("event %d", i+1)
		if e.Description == "" {
			p.errorf("%s: empty description", label)
		} else {
			label = fmt.Sprintf("%q", e.Description)
		}
		if len(e.States) == 0 || len(e.Hazards) == 0 {
			p.errorf("%s: needs at least one state and one hazard", label)
		}
		for _, s := range e.States {
			if !cat.Known(s) {
				p.errorf("%s: unknown state %q", label, s)
			}
		}
		for _, h := range e.Hazards {
			if _, err := domain.ParseHazardKind(string(h)); err != nil {
				p.errorf("%s: unknown hazard %q", label, h)
			}
		}
	}
	return p
}

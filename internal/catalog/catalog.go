// Package catalog holds the static per-state reference tables: GIS factors,
// detailed GIS profiles, baseline risk profiles, climate baselines, weather
// coordinates and the recorded disaster calendar. The data ships embedded in
// the binary as YAML and is read-only after Load.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

type document struct {
	Defaults  defaults         `yaml:"defaults"`
	States    []StateRecord    `yaml:"states"`
	Disasters []DisasterRecord `yaml:"disasters"`
	Events    []EventRecord    `yaml:"events"`
}

type defaults struct {
	Factors domain.GISFactors      `yaml:"factors"`
	Risk    domain.RiskProfile     `yaml:"risk"`
	Climate domain.ClimateBaseline `yaml:"climate"`
}

// StateRecord is one state as written in the catalog, before defaults apply.
type StateRecord struct {
	Name        string                  `yaml:"name"`
	Coordinates *domain.Coordinates     `yaml:"coordinates"`
	Risk        domain.RiskProfile      `yaml:"risk"`
	Climate     *domain.ClimateBaseline `yaml:"climate"`
	Factors     *domain.GISFactors      `yaml:"factors"`
	GIS         *domain.GISProfile      `yaml:"gis"`
}

// DisasterRecord lists the months (1-12) of a year in which a hazard hit a state.
type DisasterRecord struct {
	Year   int               `yaml:"year"`
	Hazard domain.HazardKind `yaml:"hazard"`
	State  string            `yaml:"state"`
	Months []int             `yaml:"months"`
}

// EventRecord is a notable event shown for the listed states and hazards.
type EventRecord struct {
	States      []string            `yaml:"states"`
	Hazards     []domain.HazardKind `yaml:"hazards"`
	Description string              `yaml:"description"`
}

type disasterKey struct {
	year  int
	kind  domain.HazardKind
	state string
}

// Catalog is an immutable, indexed view of the reference data. It is safe for
// concurrent use.
type Catalog struct {
	names        []string
	states       map[string]StateRecord
	defaults     defaults
	disasters    map[disasterKey][]time.Month
	disasterList []DisasterRecord
	events       []EventRecord
}

// Load decodes and indexes the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad is Load for package-level initialization and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in the
// data file fail loudly instead of silently zeroing a field.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		names:        make([]string, 0, len(doc.States)),
		states:       make(map[string]StateRecord, len(doc.States)),
		defaults:     doc.Defaults,
		disasters:    make(map[disasterKey][]time.Month),
		disasterList: doc.Disasters,
		events:       doc.Events,
	}
	for _, s := range doc.States {
		if s.Name == "" {
			return nil, fmt.Errorf("catalog state without a name")
		}
		if _, dup := c.states[s.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog state %q", s.Name)
		}
		if s.GIS != nil {
			s.GIS.State = s.Name
		}
		c.names = append(c.names, s.Name)
		c.states[s.Name] = s
	}
	for _, d := range doc.Disasters {
		key := disasterKey{year: d.Year, kind: d.Hazard, state: d.State}
		for _, m := range d.Months {
			if m < 1 || m > 12 {
				return nil, fmt.Errorf("disaster %d/%s/%s: month %d out of range", d.Year, d.Hazard, d.State, m)
			}
			c.disasters[key] = append(c.disasters[key], time.Month(m))
		}
	}
	return c, nil
}

// States returns the supported state and union territory names in display order.
func (c *Catalog) States() []string {
	return slices.Clone(c.names)
}

// Known reports whether the state is in the catalog.
func (c *Catalog) Known(state string) bool {
	_, ok := c.states[state]
	return ok
}

// Factors returns the scoring inputs for a state. States without a dedicated
// record get the default factors and ok=false.
func (c *Catalog) Factors(state string) (domain.GISFactors, bool) {
	if s, found := c.states[state]; found && s.Factors != nil {
		return *s.Factors, true
	}
	return c.defaults.Factors, false
}

// DefaultFactors returns the factors used for states without a record.
func (c *Catalog) DefaultFactors() domain.GISFactors {
	return c.defaults.Factors
}

// GISProfile returns the detailed GIS record, if one exists for the state.
func (c *Catalog) GISProfile(state string) (domain.GISProfile, bool) {
	s, found := c.states[state]
	if !found || s.GIS == nil {
		return domain.GISProfile{}, false
	}
	return cloneProfile(*s.GIS), true
}

// RiskProfile returns the baseline hazard scores for a state, falling back to
// the default profile. The returned map is a copy.
func (c *Catalog) RiskProfile(state string) domain.RiskProfile {
	src := c.defaults.Risk
	if s, found := c.states[state]; found && len(s.Risk) > 0 {
		src = s.Risk
	}
	out := make(domain.RiskProfile, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// ClimateBaseline returns the simulation baseline for a state, falling back
// to the default baseline.
func (c *Catalog) ClimateBaseline(state string) domain.ClimateBaseline {
	if s, found := c.states[state]; found && s.Climate != nil {
		return *s.Climate
	}
	return c.defaults.Climate
}

// Coordinates returns the weather lookup point, or nil if none is on record.
func (c *Catalog) Coordinates(state string) *domain.Coordinates {
	s, found := c.states[state]
	if !found || s.Coordinates == nil {
		return nil
	}
	coords := *s.Coordinates
	return &coords
}

// HadDisaster implements domain.DisasterCalendar.
func (c *Catalog) HadDisaster(year int, kind domain.HazardKind, state string, month time.Month) bool {
	return slices.Contains(c.disasters[disasterKey{year: year, kind: kind, state: state}], month)
}

// NotableEvents lists the recorded events for a state and hazard.
func (c *Catalog) NotableEvents(state string, kind domain.HazardKind) []string {
	var out []string
	for _, e := range c.events {
		if slices.Contains(e.States, state) && slices.Contains(e.Hazards, kind) {
			out = append(out, e.Description)
		}
	}
	return out
}

func cloneProfile(p domain.GISProfile) domain.GISProfile {
	p.Topography.Terrain = slices.Clone(p.Topography.Terrain)
	p.Climate.Rainfall.Seasonal = slices.Clone(p.Climate.Rainfall.Seasonal)
	p.Climate.Humidity.Seasonal = slices.Clone(p.Climate.Humidity.Seasonal)
	p.Hydrology.Rivers = slices.Clone(p.Hydrology.Rivers)
	return p
}

// Records returns the raw state records in display order. The pointed-to
// values are shared with the catalog and must not be modified.
func (c *Catalog) Records() []StateRecord {
	out := make([]StateRecord, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.states[name])
	}
	return out
}

// Disasters returns the raw disaster calendar.
func (c *Catalog) Disasters() []DisasterRecord {
	return slices.Clone(c.disasterList)
}

// Events returns the raw notable-event list.
func (c *Catalog) Events() []EventRecord {
	return slices.Clone(c.events)
}

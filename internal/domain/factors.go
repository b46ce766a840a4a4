package domain

// GISFactors is the static per-state numeric profile used as scoring input.
type GISFactors struct {
	Elevation      float64 `json:"elevation" yaml:"elevation"`           // metres, state average
	Rainfall       float64 `json:"rainfall" yaml:"rainfall"`             // mm/year
	Temperature    float64 `json:"temperature" yaml:"temperature"`       // °C, annual mean
	Population     float64 `json:"population" yaml:"population"`         // persons
	LandUse        float64 `json:"landUse" yaml:"landUse"`               // % agricultural
	SoilMoisture   float64 `json:"soilMoisture" yaml:"soilMoisture"`     // %
	RiverProximity float64 `json:"riverProximity" yaml:"riverProximity"` // km to nearest major river
	Infrastructure float64 `json:"infrastructure" yaml:"infrastructure"` // index
}

// Coordinates is a WGS-84 point, used as the weather lookup location for a state.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// ClimateBaseline seeds the simulated environmental reading for a state.
type ClimateBaseline struct {
	TempBase     float64 `json:"tempBase" yaml:"tempBase"`
	RainfallBase float64 `json:"rainfallBase" yaml:"rainfallBase"`
	Humidity     float64 `json:"humidity" yaml:"humidity"`
	WindSpeed    float64 `json:"windSpeed" yaml:"windSpeed"`
}

// RiskProfile holds a state's baseline 0-100 score per hazard kind.
type RiskProfile map[HazardKind]int

// GISProfile is the detailed, hand-authored GIS record served by the GIS lookup.
type GISProfile struct {
	State          string                `json:"state" yaml:"state"`
	Topography     Topography            `json:"topography" yaml:"topography"`
	Climate        ClimateProfile        `json:"climate" yaml:"climate"`
	Hydrology      Hydrology             `json:"hydrology" yaml:"hydrology"`
	LandUse        LandUseBreakdown      `json:"landUse" yaml:"landUse"`
	Demographics   Demographics          `json:"demographics" yaml:"demographics"`
	Infrastructure InfrastructureProfile `json:"infrastructure" yaml:"infrastructure"`
}

type Topography struct {
	Elevation Range    `json:"elevation" yaml:"elevation"`
	Slope     Slope    `json:"slope" yaml:"slope"`
	Terrain   []string `json:"terrain" yaml:"terrain"`
}

// Range is a min/max/avg triple.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
	Avg float64 `json:"avg" yaml:"avg"`
}

type Slope struct {
	Avg float64 `json:"avg" yaml:"avg"`
	Max float64 `json:"max" yaml:"max"`
}

type ClimateProfile struct {
	Rainfall    RainfallProfile `json:"rainfall" yaml:"rainfall"`
	Temperature Range           `json:"temperature" yaml:"temperature"`
	Humidity    HumidityProfile `json:"humidity" yaml:"humidity"`
}

// RainfallProfile: annual mm, monsoon share in percent, four seasonal totals.
type RainfallProfile struct {
	Annual   float64   `json:"annual" yaml:"annual"`
	Monsoon  float64   `json:"monsoon" yaml:"monsoon"`
	Seasonal []float64 `json:"seasonal" yaml:"seasonal"`
}

type HumidityProfile struct {
	Avg      float64   `json:"avg" yaml:"avg"`
	Seasonal []float64 `json:"seasonal" yaml:"seasonal"`
}

type Hydrology struct {
	Rivers      []string    `json:"rivers" yaml:"rivers"`
	WaterBodies int         `json:"waterBodies" yaml:"waterBodies"`
	Groundwater Groundwater `json:"groundwater" yaml:"groundwater"`
	FloodPlains float64     `json:"floodPlains" yaml:"floodPlains"`
}

type Groundwater struct {
	Depth   float64 `json:"depth" yaml:"depth"`
	Quality string  `json:"quality" yaml:"quality"`
}

// LandUseBreakdown is a percentage split of the state's area.
type LandUseBreakdown struct {
	Agriculture float64 `json:"agriculture" yaml:"agriculture"`
	Forest      float64 `json:"forest" yaml:"forest"`
	Urban       float64 `json:"urban" yaml:"urban"`
	Water       float64 `json:"water" yaml:"water"`
	Barren      float64 `json:"barren" yaml:"barren"`
}

type Demographics struct {
	Population int64   `json:"population" yaml:"population"`
	Density    float64 `json:"density" yaml:"density"`
	Urban      float64 `json:"urban" yaml:"urban"`
	Rural      float64 `json:"rural" yaml:"rural"`
	Vulnerable float64 `json:"vulnerable" yaml:"vulnerable"`
}

type InfrastructureProfile struct {
	Roads             int `json:"roads" yaml:"roads"`
	Railways          int `json:"railways" yaml:"railways"`
	Hospitals         int `json:"hospitals" yaml:"hospitals"`
	Schools           int `json:"schools" yaml:"schools"`
	EmergencyServices int `json:"emergencyServices" yaml:"emergencyServices"`
}

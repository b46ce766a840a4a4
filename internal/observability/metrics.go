package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hazard_api"

// Metrics holds the Prometheus counters, histograms, and gauges for the analysis API.
type Metrics struct {
	// Scenario analysis.
	Analyses         *prometheus.CounterVec   // labels: hazard, outcome={success,invalid}
	AnalysisDuration prometheus.Histogram     // seconds spent scoring one request
	RiskScore        *prometheus.HistogramVec // labels: hazard

	// Environmental readings.
	EnvironmentReadings *prometheus.CounterVec // labels: source={live,simulated}
	WeatherRequests     *prometheus.CounterVec // labels: outcome={success,error}
	WeatherAPIDuration  prometheus.Histogram
	WeatherEnabled      prometheus.Gauge

	// Analysis event publishing.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error,dropped}
	EventsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// multiple tests can each build their own without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// Register adds every collector to reg. Used by tests that scrape a private registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func newMetrics() *Metrics {
	return &Metrics{
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Scenario analyses by hazard and outcome.",
		}, []string{"hazard", "outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time to score one scenario, excluding transport.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		RiskScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of computed scenario risk scores.",
			Buckets:   []float64{20, 40, 60, 80, 100},
		}, []string{"hazard"}),
		EnvironmentReadings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "environment_readings_total",
			Help:      "Environmental readings served, by source.",
		}, []string{"source"}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weather_enabled",
			Help:      "1 when live weather lookups are enabled, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_events_total",
			Help:      "Analysis events written to Kafka, by outcome.",
		}, []string{"outcome"}),
		EventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analysis_events_enabled",
			Help:      "1 when analysis events are published, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Analyses,
		m.AnalysisDuration,
		m.RiskScore,
		m.EnvironmentReadings,
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.WeatherEnabled,
		m.EventsPublished,
		m.EventsEnabled,
	}
}

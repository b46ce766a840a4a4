package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
	"github.com/couchcryptid/hazard-analysis-service/internal/observability"
)

const (
	gisDataSource   = "ISRO, IMD, Census 2021, NRSC"
	gisAccuracy     = "95.2%"
	publishTimeout  = 5 * time.Second
	tracerName      = "github.com/couchcryptid/hazard-analysis-service/internal/analysis"
	outcomeSuccess  = "success"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
	outcomeDropped  = "dropped"
	sourceLive      = "live"
	sourceSimulated = "simulated"
)

// Catalog provides the static reference data the service reads.
type Catalog interface {
	States() []string
	Factors(state string) (domain.GISFactors, bool)
	GISProfile(state string) (domain.GISProfile, bool)
	RiskProfile(state string) domain.RiskProfile
	ClimateBaseline(state string) domain.ClimateBaseline
	Coordinates(state string) *domain.Coordinates
	NotableEvents(state string, kind domain.HazardKind) []string
	domain.DisasterCalendar
}

// Publisher receives every successful analysis.
type Publisher interface {
	Publish(ctx context.Context, result domain.AnalysisResult) error
}

// GISReport is a detailed GIS profile with provenance fields.
type GISReport struct {
	domain.GISProfile
	LastUpdated time.Time `json:"lastUpdated"`
	DataSource  string    `json:"dataSource"`
	Accuracy    string    `json:"accuracy"`
}

// RiskOverview is the per-hazard risk picture for a state under current conditions.
type RiskOverview struct {
	State       string                                   `json:"state"`
	Environment domain.EnvironmentalReading              `json:"environment"`
	Risks       map[domain.HazardKind]domain.HazardScore `json:"risks"`
}

// TrendReport is a historical risk series with the notable events behind it.
type TrendReport struct {
	State         string              `json:"state"`
	HazardType    domain.HazardKind   `json:"hazardType"`
	Points        []domain.TrendPoint `json:"points"`
	NotableEvents []string            `json:"notableEvents"`
}

// Option configures a Service.
type Option func(*Service)

// WithWeather enables live environmental readings.
func WithWeather(p domain.WeatherProvider) Option {
	return func(s *Service) { s.weather = p }
}

// WithPublisher enables analysis events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRand replaces the random source used for jitter.
func WithRand(r domain.RandSource) Option {
	return func(s *Service) { s.rnd = r }
}

// Service answers hazard queries from the catalog. Each call is independent;
// the only shared state is the read-only catalog and the random source.
type Service struct {
	catalog   Catalog
	scorer    *domain.HazardScorer
	weather   domain.WeatherProvider
	publisher Publisher
	rnd       domain.RandSource
	logger    *slog.Logger
	metrics   *observability.Metrics
	tracer    trace.Tracer

	mu       sync.Mutex // guards draining and inflight.Add
	draining bool
	inflight sync.WaitGroup
}

// New creates a Service backed by the given catalog.
func New(catalog Catalog, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		rnd:     domain.DefaultRand,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scorer = domain.NewHazardScorer(s.rnd)

	if s.weather != nil {
		metrics.WeatherEnabled.Set(1)
	}
	if s.publisher != nil {
		metrics.EventsEnabled.Set(1)
	}
	return s
}

// CheckReadiness reports an error while the service is draining or when the
// catalog is empty.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.isDraining() {
		return errors.New("service is shutting down")
	}
	if len(s.catalog.States()) == 0 {
		return errors.New("catalog has no states")
	}
	return nil
}

// Analyze validates the request and scores the scenario. States without GIS
// factors are scored with the default factors.
func (s *Service) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.Analyze", trace.WithAttributes(
		attribute.String("hazard.state", req.State),
		attribute.String("hazard.type", req.HazardType),
	))
	defer span.End()

	kind, err := req.Validate()
	if err != nil {
		s.metrics.Analyses.WithLabelValues(hazardLabel(req.HazardType), outcomeInvalid).Inc()
		span.SetStatus(codes.Error, err.Error())
		return domain.AnalysisResult{}, err
	}

	start := time.Now()
	factors, known := s.catalog.Factors(req.State)
	if !known {
		s.logger.Debug("no GIS factors for state, using defaults", "state", req.State)
	}
	result := s.scorer.Score(req.State, kind, factors, *req.Scenario)
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.Analyses.WithLabelValues(string(kind), outcomeSuccess).Inc()
	s.metrics.RiskScore.WithLabelValues(string(kind)).Observe(float64(result.RiskScore))

	span.SetAttributes(
		attribute.Int("hazard.risk_score", result.RiskScore),
		attribute.String("hazard.risk_level", string(result.RiskLevel)),
		attribute.Bool("hazard.default_factors", !known),
	)
	s.logger.Info("scenario analyzed",
		"state", result.State,
		"hazard", result.HazardType,
		"risk_score", result.RiskScore,
		"risk_level", result.RiskLevel,
	)

	s.publish(ctx, result)
	return result, nil
}

// publish hands the result to the publisher in the background. Failures are
// logged and counted; the caller already has its result. Once draining has
// begun new events are dropped so Drain's wait cannot race an Add.
func (s *Service) publish(ctx context.Context, result domain.AnalysisResult) {
	if s.publisher == nil {
		return
	}
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		s.metrics.EventsPublished.WithLabelValues(outcomeDropped).Inc()
		s.logger.Warn("service draining, analysis event dropped", "state", result.State)
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(pubCtx, result); err != nil {
			s.metrics.EventsPublished.WithLabelValues(outcomeError).Inc()
			s.logger.Error("publish analysis event failed", "state", result.State, "error", err)
			return
		}
		s.metrics.EventsPublished.WithLabelValues(outcomeSuccess).Inc()
	}()
}

// BeginDrain marks the service not ready and stops accepting new analysis
// events. Call it before shutting the HTTP server down so readiness probes
// see the change while connections drain.
func (s *Service) BeginDrain() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()
}

func (s *Service) isDraining() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draining
}

// Drain calls BeginDrain, then waits for in-flight publishes to finish or for
// ctx to expire.
func (s *Service) Drain(ctx context.Context) error {
	s.BeginDrain()
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// States lists supported states and union territories.
func (s *Service) States() []string {
	return s.catalog.States()
}

// GIS returns the detailed GIS profile for a state. Unlike Analyze there is
// no default: states without a profile yield domain.ErrUnknownState.
func (s *Service) GIS(ctx context.Context, state string) (GISReport, error) {
	_, span := s.tracer.Start(ctx, "analysis.GIS", trace.WithAttributes(attribute.String("hazard.state", state)))
	defer span.End()

	profile, ok := s.catalog.GISProfile(state)
	if !ok {
		span.SetStatus(codes.Error, "unknown state")
		return GISReport{}, domain.ErrUnknownState
	}
	return GISReport{
		GISProfile:  profile,
		LastUpdated: domain.Now().UTC(),
		DataSource:  gisDataSource,
		Accuracy:    gisAccuracy,
	}, nil
}

// Environment returns the current environmental reading for a state.
func (s *Service) Environment(ctx context.Context, state string) domain.EnvironmentalReading {
	ctx, span := s.tracer.Start(ctx, "analysis.Environment", trace.WithAttributes(attribute.String("hazard.state", state)))
	defer span.End()

	env := domain.ObserveEnvironment(ctx, state,
		s.catalog.Coordinates(state),
		s.catalog.ClimateBaseline(state),
		s.weather, s.rnd, s.logger)

	source := sourceSimulated
	if env.IsLive {
		source = sourceLive
	}
	s.metrics.EnvironmentReadings.WithLabelValues(source).Inc()
	span.SetAttributes(attribute.Bool("weather.live", env.IsLive))
	return env
}

// Risks returns the state's baseline profile adjusted by current conditions.
func (s *Service) Risks(ctx context.Context, state string) RiskOverview {
	ctx, span := s.tracer.Start(ctx, "analysis.Risks", trace.WithAttributes(attribute.String("hazard.state", state)))
	defer span.End()

	env := s.Environment(ctx, state)
	return RiskOverview{
		State:       state,
		Environment: env,
		Risks:       domain.AssessRisks(s.catalog.RiskProfile(state), env, s.rnd),
	}
}

// Trends returns the three-year monthly risk series for a state and hazard.
func (s *Service) Trends(ctx context.Context, state, hazard string) (TrendReport, error) {
	_, span := s.tracer.Start(ctx, "analysis.Trends", trace.WithAttributes(
		attribute.String("hazard.state", state),
		attribute.String("hazard.type", hazard),
	))
	defer span.End()

	kind, err := domain.ParseHazardKind(hazard)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TrendReport{}, err
	}

	events := s.catalog.NotableEvents(state, kind)
	if events == nil {
		events = []string{}
	}
	return TrendReport{
		State:         state,
		HazardType:    kind,
		Points:        domain.HistoricalTrends(state, kind, s.catalog.RiskProfile(state), s.catalog, s.rnd),
		NotableEvents: events,
	}, nil
}

// hazardLabel keeps metric label cardinality bounded for caller-supplied values.
func hazardLabel(h string) string {
	if _, err := domain.ParseHazardKind(h); err != nil {
		return "unknown"
	}
	return h
}

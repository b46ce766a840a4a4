package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/couchcryptid/hazard-analysis-service/internal/analysis"
	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
)

// Service is the hazard query surface the HTTP layer exposes.
type Service interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
	GIS(ctx context.Context, state string) (analysis.GISReport, error)
	States() []string
	Environment(ctx context.Context, state string) domain.EnvironmentalReading
	Risks(ctx context.Context, state string) analysis.RiskOverview
	Trends(ctx context.Context, state, hazard string) (analysis.TrendReport, error)
}

// Server exposes the hazard API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        Service
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API routes and /healthz, /readyz, /metrics.
func NewServer(addr string, svc Service, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      otelhttp.NewHandler(mux, "hazard-api"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /analyze", handleDescribe)
	mux.HandleFunc("GET /gis/{state}", s.handleGIS)
	mux.HandleFunc("GET /states", s.handleStates)
	mux.HandleFunc("GET /states/{state}/environment", s.handleEnvironment)
	mux.HandleFunc("GET /states/{state}/risks", s.handleRisks)
	mux.HandleFunc("GET /states/{state}/trends", s.handleTrends)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/hazard-analysis-service/internal/adapter/http"
	"github.com/couchcryptid/hazard-analysis-service/internal/analysis"
	"github.com/couchcryptid/hazard-analysis-service/internal/catalog"
	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
	"github.com/couchcryptid/hazard-analysis-service/internal/observability"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// failingService breaks Analyze with an unexpected error.
type failingService struct {
	*analysis.Service
}

func (failingService) Analyze(context.Context, domain.AnalysisRequest) (domain.AnalysisResult, error) {
	return domain.AnalysisResult{}, errors.New("disk on fire")
}

const dashboardBody = `{
	"state": "Kerala",
	"hazardType": "flood",
	"scenario": {
		"timeframe": "1-year",
		"severity": [75],
		"rainfall": [100],
		"temperature": [100],
		"windSpeed": [50],
		"duration": [7],
		"seasonality": "monsoon",
		"climateChange": true,
		"populationGrowth": [110],
		"infrastructureDevelopment": [100]
	}
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) *analysis.Service {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.July, 30, 6, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })
	return analysis.New(catalog.MustLoad(), discardLogger(), observability.NewMetricsForTesting(),
		analysis.WithRand(fixedRand(0.5)))
}

func newTestServer(t *testing.T, readyErr error) *httpadapter.Server {
	t.Helper()
	return httpadapter.NewServer(":0", newService(t), &mockReadiness{err: readyErr}, discardLogger())
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// --- analyze ---

func TestAnalyze_DashboardPayload(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/analyze", dashboardBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	result := decode[domain.AnalysisResult](t, rec)
	assert.Equal(t, "Kerala", result.State)
	assert.Equal(t, domain.Flood, result.HazardType)
	assert.GreaterOrEqual(t, result.RiskScore, 0)
	assert.LessOrEqual(t, result.RiskScore, 100)
	assert.Equal(t, domain.LevelFor(result.RiskScore), result.RiskLevel)
	assert.Equal(t, "IHAP-2024.1", result.ModelVersion)
	assert.Equal(t, []string{"IMD", "ISRO", "Census", "NRSC"}, result.DataSources)
	assert.Equal(t, domain.DefaultScenario(), result.Scenario)
}

func TestAnalyze_ScalarSliders(t *testing.T) {
	srv := newTestServer(t, nil)
	body := `{"state":"Rajasthan","hazardType":"drought","scenario":{"severity":75,"rainfall":100,"temperature":120,"windSpeed":50,"duration":30,"climateChange":false,"populationGrowth":100,"infrastructureDevelopment":100}}`

	rec := do(t, srv, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.Drought, decode[domain.AnalysisResult](t, rec).HazardType)
}

func TestAnalyze_UnknownStateUsesDefaults(t *testing.T) {
	srv := newTestServer(t, nil)
	body := strings.Replace(dashboardBody, `"Kerala"`, `"Atlantis"`, 1)

	rec := do(t, srv, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Atlantis", decode[domain.AnalysisResult](t, rec).State)
}

func TestAnalyze_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing state", `{"hazardType":"flood","scenario":{}}`, "missing required parameters"},
		{"missing hazard", `{"state":"Kerala","scenario":{}}`, "missing required parameters"},
		{"missing scenario", `{"state":"Kerala","hazardType":"flood"}`, "missing required parameters"},
		{"unsupported hazard", `{"state":"Kerala","hazardType":"cyclone","scenario":{}}`, "unsupported hazard type"},
		{"negative slider", `{"state":"Kerala","hazardType":"flood","scenario":{"duration":[-3]}}`, "invalid scenario"},
		{"malformed json", `{"state":`, "invalid request body"},
		{"wrong slider shape", `{"state":"Kerala","hazardType":"flood","scenario":{"severity":[1,2]}}`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec := do(t, srv, http.MethodPost, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tt.wantErr)
		})
	}
}

func TestAnalyze_OversizedBodyIs413(t *testing.T) {
	srv := newTestServer(t, nil)
	body := `{"state":"Kerala","hazardType":"flood","timeframe":"` + strings.Repeat("x", 2<<20) + `"}`

	rec := do(t, srv, http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decode[map[string]string](t, rec)["error"])
}

func TestAnalyze_UnexpectedErrorIs500(t *testing.T) {
	srv := httpadapter.NewServer(":0", failingService{newService(t)}, &mockReadiness{}, discardLogger())

	rec := do(t, srv, http.MethodPost, "/analyze", dashboardBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "analysis failed", decode[map[string]string](t, rec)["error"])
}

func TestAnalyze_Descriptor(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/analyze", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message   string            `json:"message"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "India Hazard Analysis Platform API", body.Message)
	assert.Equal(t, "2.1.0", body.Version)
	assert.Contains(t, body.Endpoints, "analyze")
	assert.Contains(t, body.Endpoints, "gis")
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodDelete, "/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// --- gis ---

func TestGIS_KnownState(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/gis/Uttar%20Pradesh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Uttar Pradesh", body["state"])
	assert.Equal(t, "95.2%", body["accuracy"])
	assert.Equal(t, "ISRO, IMD, Census 2021, NRSC", body["dataSource"])
	assert.Equal(t, "2024-07-30T06:00:00Z", body["lastUpdated"])
	assert.Contains(t, body, "topography")
	assert.Contains(t, body, "hydrology")
}

func TestGIS_UnknownStateIs404(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, state := range []string{"Unknown", "Bihar"} {
		rec := do(t, srv, http.MethodGet, "/gis/"+state, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, state)
		assert.Equal(t, "state not found", decode[map[string]string](t, rec)["error"])
	}
}

// --- states ---

func TestStates(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/states", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		States      []string `json:"states"`
		HazardTypes []string `json:"hazardTypes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.States, 36)
	assert.Equal(t, []string{"flood", "drought", "cyclone", "earthquake", "heatwave", "landslide"}, body.HazardTypes)
}

func TestEnvironment(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/states/Kerala/environment", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[domain.EnvironmentalReading](t, rec)
	assert.False(t, env.IsLive)
	assert.Equal(t, 28.0, env.Temperature)
}

func TestRisks(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/states/Odisha/risks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	overview := decode[analysis.RiskOverview](t, rec)
	assert.Equal(t, "Odisha", overview.State)
	assert.Len(t, overview.Risks, 6)
}

func TestTrends(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/states/Assam/trends?hazard=flood", "")
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[analysis.TrendReport](t, rec)
	assert.Len(t, report.Points, 36)
	assert.Len(t, report.NotableEvents, 1)

	rec = do(t, srv, http.MethodGet, "/states/Assam/trends?hazard=tsunami", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/states/Assam/trends", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- health and metrics ---

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(t, fmt.Errorf("not ready yet"))
	rec := do(t, srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

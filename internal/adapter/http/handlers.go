package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/couchcryptid/hazard-analysis-service/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type statesResponse struct {
	States      []string            `json:"states"`
	HazardTypes []domain.HazardKind `json:"hazardTypes"`
}

type descriptor struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Model     string            `json:"modelVersion"`
	Endpoints map[string]string `json:"endpoints"`
}

var apiDescriptor = descriptor{
	Message: "India Hazard Analysis Platform API",
	Version: "2.1.0",
	Model:   domain.ModelVersion,
	Endpoints: map[string]string{
		"analyze":     "POST /analyze - Perform hazard analysis",
		"states":      "GET /states - Get available states",
		"gis":         "GET /gis/{state} - Get GIS data for state",
		"environment": "GET /states/{state}/environment - Current environmental conditions",
		"risks":       "GET /states/{state}/risks - Per-hazard risk overview",
		"trends":      "GET /states/{state}/trends?hazard= - Three-year monthly risk trend",
	},
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleDescribe(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, apiDescriptor)
}

func (s *Server) handleGIS(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.GIS(r.Context(), r.PathValue("state"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to retrieve GIS data")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statesResponse{
		States:      s.svc.States(),
		HazardTypes: domain.HazardKinds,
	})
}

func (s *Server) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Environment(r.Context(), r.PathValue("state")))
}

func (s *Server) handleRisks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Risks(r.Context(), r.PathValue("state")))
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	hazard := r.URL.Query().Get("hazard")
	if hazard == "" {
		writeError(w, http.StatusBadRequest, "missing hazard query parameter")
		return
	}
	report, err := s.svc.Trends(r.Context(), r.PathValue("state"), hazard)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to build trends")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeServiceError maps domain errors to client statuses. Anything
// unrecognised is logged and reported as a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrUnsupportedHazard),
		errors.Is(err, domain.ErrInvalidScenario):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownState):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}

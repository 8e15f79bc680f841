// Package api - cost engine handlers.
// These handlers wrap the engine service; they contain NO estimation logic.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"buildaide/core/engine"
	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
)

// EstimateResponse is the body of POST /api/cost-engine/estimate
type EstimateResponse struct {
	*engine.EstimateResult
	EngineVersion string `json:"engineVersion"`
}

// handleEstimate handles POST /api/cost-engine/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	params, err := s.decodeCostParameters(w, r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	result, err := s.service.Estimate(r.Context(), params)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	s.writeJSON(w, EstimateResponse{EstimateResult: result, EngineVersion: s.version}, http.StatusOK)
}

// handleWhatIf handles POST /api/cost-engine/what-if
func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	params, err := s.decodeCostParameters(w, r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	result, err := s.service.WhatIf(r.Context(), params)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	s.writeJSON(w, result, http.StatusOK)
}

// handleRegionalInsight handles GET /api/cost-engine/regional-insights/{zip}
func (s *Server) handleRegionalInsight(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.service.RegionalInsight(r.Context(), r.PathValue("zip")), http.StatusOK)
}

// handleTables handles GET /api/cost-engine/tables
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"tables":      s.service.Tables(),
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// decodeCostParameters validates the body against the schema, then decodes it
func (s *Server) decodeCostParameters(w http.ResponseWriter, r *http.Request) (types.CostParameters, error) {
	var params types.CostParameters

	body, err := readBody(w, r)
	if err != nil {
		return params, err
	}
	if err := validateCostParameters(body); err != nil {
		return params, err
	}
	if err := json.Unmarshal(body, &params); err != nil {
		return params, apperrors.Wrap(apperrors.TypeInput, "invalid project parameters", err)
	}
	return params, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeInput, "failed to read request body", err)
	}
	return body, nil
}

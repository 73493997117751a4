package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unismart/unismart/internal/matching"
	"github.com/unismart/unismart/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "storage not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Matching handlers

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	simulate := r.URL.Query().Get("simulate") == "true"

	recs := s.matcher.Recommend(r.Context(), req.Profile, req.TopK, simulate)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"total":           len(recs),
	})
}

func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req models.WhatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result := s.matcher.WhatIf(r.Context(), req.Profile, req.Changes, req.TopK)

	respondJSON(w, http.StatusOK, result)
}

// handleArgumentation builds a pros-and-risks view for the authenticated
// user's stored profile against one program
func (s *Server) handleArgumentation(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	compoundID := chi.URLParam(r, "compoundID")
	uniID, progID, ok := strings.Cut(compoundID, "-")
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "compound id must be 'university-program'")
		return
	}

	u := s.catalog.Get(uniID)
	p := s.catalog.GetProgram(uniID, progID)
	if u == nil || p == nil {
		respondError(w, http.StatusNotFound, "not_found", "university or program not found")
		return
	}

	profile, err := s.repo.GetProfile(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load profile for argumentation", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, matching.Argue(profile, u, p))
}

// Catalog handlers

func (s *Server) handleListUniversities(w http.ResponseWriter, r *http.Request) {
	universities := s.catalog.List()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"universities": universities,
		"total":        len(universities),
	})
}

func (s *Server) handleGetUniversity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u := s.catalog.Get(id)
	if u == nil {
		respondError(w, http.StatusNotFound, "not_found", "university not found")
		return
	}

	respondJSON(w, http.StatusOK, u)
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/unismart/unismart/internal/models"
	"github.com/unismart/unismart/internal/roadmap"
)

// handleCreateRoadmap generates and stores an admission roadmap for the
// authenticated user's profile and one target program
func (s *Server) handleCreateRoadmap(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req models.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.UniversityID == "" || req.ProgramID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "university_id and program_id are required")
		return
	}

	u := s.catalog.Get(req.UniversityID)
	p := s.catalog.GetProgram(req.UniversityID, req.ProgramID)
	if u == nil || p == nil {
		respondError(w, http.StatusNotFound, "not_found", "university or program not found")
		return
	}

	profile, err := s.repo.GetProfile(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load profile for roadmap", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	items := s.roadmaps.Generate(r.Context(), roadmap.Request{
		Profile:    profile,
		University: u,
		Program:    p,
		StartDate:  parseDate(req.StartDate),
		Deadline:   parseDate(req.Deadline),
	})

	if err := s.repo.SaveRoadmap(r.Context(), sess.UserID, items); err != nil {
		slog.Error("failed to save roadmap", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save roadmap")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roadmap": items,
	})
}

func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	items, err := s.repo.GetRoadmap(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load roadmap", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load roadmap")
		return
	}
	if items == nil {
		items = []*models.RoadmapItem{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roadmap": items,
	})
}

// parseDate accepts an ISO date or datetime; anything else yields zero
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

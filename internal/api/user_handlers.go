package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/unismart/unismart/internal/models"
)

// User data handlers. All of them run behind Authenticate, so the session
// in context is never nil.

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	profile, err := s.repo.GetProfile(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	current, err := s.repo.GetProfile(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load profile")
		return
	}

	updated := req.Apply(current)
	if err := s.repo.SaveProfile(r.Context(), sess.UserID, updated); err != nil {
		slog.Error("failed to save profile", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": updated,
	})
}

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	favorites, err := s.repo.GetFavorites(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load favorites", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load favorites")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}

func (s *Server) handleSaveFavorites(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req models.FavoritesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.repo.SaveFavorites(r.Context(), sess.UserID, req.Favorites); err != nil {
		slog.Error("failed to save favorites", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save favorites")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": req.Favorites,
	})
}

func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	comparison, err := s.repo.GetComparison(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load comparison list", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load comparison list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"comparison_list": comparison,
	})
}

func (s *Server) handleSaveComparison(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req models.ComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.repo.SaveComparison(r.Context(), sess.UserID, req.ComparisonList); err != nil {
		slog.Error("failed to save comparison list", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save comparison list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"comparison_list": req.ComparisonList,
	})
}

func (s *Server) handleGetApplications(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	apps, err := s.repo.GetApplications(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to load applications", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load applications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
	})
}

func (s *Server) handleSaveApplications(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req models.ApplicationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	for _, app := range req.Applications {
		if app.UniversityID == "" || app.ProgramID == "" {
			respondError(w, http.StatusBadRequest, "validation_error", "every application needs university_id and program_id")
			return
		}
	}

	if err := s.repo.SaveApplications(r.Context(), sess.UserID, req.Applications); err != nil {
		slog.Error("failed to save applications", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save applications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"applications": req.Applications,
	})
}

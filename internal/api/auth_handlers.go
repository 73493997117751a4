package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/unismart/unismart/internal/auth"
	"github.com/unismart/unismart/internal/models"
	"github.com/unismart/unismart/internal/storage"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, sess, err := s.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			slog.Error("registration failed", "error", err)
			respondError(w, http.StatusBadRequest, "validation_error", "invalid registration data")
		}
		return
	}

	respondJSON(w, http.StatusCreated, models.AuthResponse{
		Success: true,
		Message: "registered",
		User:    user,
		Token:   sess.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, sess, err := s.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "logged in",
		User:    user,
		Token:   sess.Token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing_token", "provide Authorization header with Bearer token")
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		slog.Error("logout failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "logout failed")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "logged out",
	})
}

// handleMe returns the account behind the current session
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	user, err := s.repo.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid_token", "account no longer exists")
			return
		}
		slog.Error("failed to load account", "error", err, "user", sess.UserID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "ok",
		User:    user,
	})
}

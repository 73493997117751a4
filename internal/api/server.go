// Package api exposes the HTTP surface: auth, recommendations, what-if
// simulation, argumentation, user data and roadmaps.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unismart/unismart/internal/auth"
	"github.com/unismart/unismart/internal/catalog"
	"github.com/unismart/unismart/internal/config"
	"github.com/unismart/unismart/internal/matching"
	"github.com/unismart/unismart/internal/roadmap"
	"github.com/unismart/unismart/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	catalog        *catalog.Catalog
	matcher        *matching.Matcher
	auth           *auth.Service
	repo           storage.Repository
	roadmaps       *roadmap.Generator
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	cat *catalog.Catalog,
	matcher *matching.Matcher,
	authSvc *auth.Service,
	repo storage.Repository,
	roadmaps *roadmap.Generator,
) *Server {
	s := &Server{
		config:         cfg,
		catalog:        cat,
		matcher:        matcher,
		auth:           authSvc,
		repo:           repo,
		roadmaps:       roadmaps,
		authMiddleware: NewAuthMiddleware(authSvc),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health checks (public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints (public)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.With(s.authMiddleware.Authenticate).Get("/auth/me", s.handleMe)

		// Matching endpoints work on the profile in the request body and
		// need no account
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/what-if", s.handleWhatIf)

		// Catalog read endpoints (public)
		r.Get("/universities", s.handleListUniversities)
		r.Get("/universities/{id}", s.handleGetUniversity)

		// Everything below works on the authenticated user's stored data
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.Authenticate)

			r.Get("/argumentation/{compoundID}", s.handleArgumentation)

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", s.handleGetProfile)
				r.Put("/profile", s.handleUpdateProfile)
				r.Get("/favorites", s.handleGetFavorites)
				r.Post("/favorites", s.handleSaveFavorites)
				r.Get("/comparison", s.handleGetComparison)
				r.Post("/comparison", s.handleSaveComparison)
				r.Get("/applications", s.handleGetApplications)
				r.Post("/applications", s.handleSaveApplications)
			})

			r.Post("/roadmap", s.handleCreateRoadmap)
			r.Get("/roadmap", s.handleGetRoadmap)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

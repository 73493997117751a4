package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unismart/unismart/internal/api"
	"github.com/unismart/unismart/internal/auth"
	"github.com/unismart/unismart/internal/catalog"
	"github.com/unismart/unismart/internal/cleanup"
	"github.com/unismart/unismart/internal/config"
	"github.com/unismart/unismart/internal/explain"
	"github.com/unismart/unismart/internal/matching"
	"github.com/unismart/unismart/internal/roadmap"
	"github.com/unismart/unismart/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting unismart",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Load the university catalog
	var cat *catalog.Catalog
	if cfg.Catalog.Dir != "" {
		cat, err = catalog.LoadFromDir(cfg.Catalog.Dir)
		if err != nil {
			slog.Error("failed to load catalog", "dir", cfg.Catalog.Dir, "error", err)
			os.Exit(1)
		}
		slog.Info("catalog loaded", "dir", cfg.Catalog.Dir, "universities", len(cat.List()), "programs", cat.ProgramCount())
	} else {
		cat = catalog.Default()
		slog.Info("using built-in catalog", "universities", len(cat.List()), "programs", cat.ProgramCount())
	}

	// Initialize user data storage
	var repo storage.Repository
	if cfg.Database.DSN != "" {
		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		repo, err = storage.NewPostgresRepository(initCtx, storage.PostgresConfig{DSN: cfg.Database.DSN})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected successfully")
	} else {
		repo = storage.NewMemoryRepository()
		slog.Warn("no DATABASE_DSN configured, user data is kept in memory")
	}
	defer repo.Close()

	// Initialize session store
	var sessions auth.SessionStore
	if cfg.Redis.Address != "" {
		sessions, err = auth.NewRedisStore(initCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.TTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("redis session store connected", "address", cfg.Redis.Address)
	} else {
		sessions = auth.NewMemoryStore()
		slog.Warn("no REDIS_ADDRESS configured, sessions are kept in memory")
	}
	defer sessions.Close()

	authSvc := auth.NewService(repo, sessions, cfg.Session.TTL)

	// Pick the explanation backend
	var explainer explain.Explainer
	var gemini *explain.Gemini
	if cfg.Gemini.APIKey != "" {
		gemini, err = explain.NewGemini(initCtx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		explainer = gemini
		slog.Info("gemini explainer enabled", "model", gemini.Model())
	} else {
		explainer = explain.NewStatic()
		slog.Info("using static rule-based explainer")
	}

	matcher := matching.New(cat, explainer)

	// The roadmap generator shares the Gemini client; nil means fallback plans
	var roadmaps *roadmap.Generator
	if gemini != nil {
		roadmaps = roadmap.New(gemini)
	} else {
		roadmaps = roadmap.New(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the expired-session sweeper
	cleaner := cleanup.NewCleaner(sessions, cfg.Cleanup.Interval)
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cat, matcher, authSvc, repo, roadmaps)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("unismart stopped")
}

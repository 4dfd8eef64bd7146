// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/solmara/cuna/internal/api"
	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/database"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/upload"
)

// Option configures Run.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies the loaded configuration. Run fails without one.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("database_path", cfg.Database.Path),
		slog.String("uploads_path", cfg.Uploads.Path),
		slog.String("backups_path", cfg.Backups.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc.repo, svc.uploads, svc.backups, svc.userID,
		cfg.Auth.AuthEnabled(), cfg.Auth.Token))

	// Ingested media is addressed by web path everywhere.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(svc.uploads.Root()))))

	scheduler, err := backup.NewScheduler(svc.backups, cfg.Backups.DailyAt, cfg.Backups.KeepCount, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Daily backup timer.
	g.Go(func() error {
		return scheduler.Run(gCtx)
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// services bundles the wired application components.
type services struct {
	repo    *repository.Repo
	uploads *upload.Store
	backups *backup.Service
	userID  uint
}

// buildServices opens the database, seeds the profile, and wires the
// repositories, upload store and backup service.
func buildServices(cfg *Config, logger *slog.Logger) (*services, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	userID, err := database.SeedDefaultUser(db)
	if err != nil {
		return nil, err
	}

	uploads, err := upload.NewStore(cfg.Uploads.Path, cfg.Uploads.MaxBytes)
	if err != nil {
		return nil, err
	}

	repo := repository.New(db)
	backups := backup.NewService(repo, uploads.Root(), cfg.Backups.Path, Version, logger)

	return &services{
		repo:    repo,
		uploads: uploads,
		backups: backups,
		userID:  userID,
	}, nil
}

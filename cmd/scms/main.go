// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/config"
	"github.com/olegiv/scms-go/internal/handler/api"
	"github.com/olegiv/scms-go/internal/logging"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/section"
	"github.com/olegiv/scms-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "sCMS - School Content Management Service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_JWT_SECRET        Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DB_PATH           SQLite database path (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_PORT       Server port (default: 3001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_UPLOADS_DIR       Uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ADMIN_USERNAME    Bootstrap admin username (default: admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ADMIN_PASSWORD    Bootstrap admin password (default: changeme)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_CORS_ORIGINS      Comma-separated allowed origins for the admin client\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/olegiv/scms-go\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("scms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data and uploads directories exist
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the admin credential and section defaults
	ctx := context.Background()
	if err := store.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	sections := section.NewStore(store.New(db))
	if err := section.SeedDefaults(ctx, sections); err != nil {
		return fmt.Errorf("seeding section defaults: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	lockout := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	apiHandler := api.NewHandler(db, cfg.UploadsDir, tokens, lockout, appVersion)

	r := buildRouter(cfg, apiHandler, tokens, lockout)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// buildRouter wires all routes. Public reads need no credentials;
// every mutating content route sits behind the bearer token check.
func buildRouter(cfg *config.Config, h *api.Handler, tokens *auth.TokenManager, lockout *middleware.LoginProtection) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins(), cfg.IsDevelopment()))

	requireAuth := middleware.RequireAuth(tokens)

	// Admin login, behind its own per-IP rate limit
	r.Group(func(r chi.Router) {
		r.Use(lockout.Middleware())
		r.Post("/admin/login", h.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)

		// Public section reads
		for _, schema := range section.Registry {
			r.Get("/"+schema.Route, h.GetSection(schema))
		}

		// Authenticated content writes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			for _, schema := range section.Registry {
				schema := schema
				switch schema.Key {
				case section.KeyBanner:
					r.Post("/"+schema.Route, h.UpdateSection(schema))
					r.Delete("/"+schema.Route, h.DeleteBanner)
				case section.KeyCalendar:
					r.Put("/"+schema.Route, h.UpdateSection(schema))
					r.Post("/"+schema.Route+"/event", h.UpsertCalendarEvent)
				default:
					r.Post("/"+schema.Route, h.UpdateSection(schema))
					// The admin client saves replace-policy sections with PUT
					if schema.Policy == section.PolicyReplace {
						r.Put("/"+schema.Route, h.UpdateSection(schema))
					}
				}
			}

			r.Get("/sections", h.ListSections)
			r.Post("/upload", h.Upload)
			r.Get("/uploads", h.ListUploads)
		})
	})

	// Serve uploaded files
	r.Get("/uploads/*", api.ServeUploads(cfg.UploadsDir))

	return r
}

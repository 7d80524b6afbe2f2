// Package server wires handlers, middleware, and routes, and owns the HTTP
// server lifecycle.
//
// This is the composition root: every dependency chain is assembled here —
// repositories into services, services into handlers, handlers into routes —
// so nothing else in the codebase needs to know how its collaborators are
// constructed.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/game-wiki/internal/auth"
	"github.com/sakif/game-wiki/internal/handler"
	"github.com/sakif/game-wiki/internal/middleware"
	"github.com/sakif/game-wiki/internal/repository"
	"github.com/sakif/game-wiki/internal/repository/memory"
	sqliteRepo "github.com/sakif/game-wiki/internal/repository/sqlite"
	"github.com/sakif/game-wiki/internal/service"
)

// OAuthCredentials is one provider's client id/secret pair.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

// Config holds server configuration, read from the environment by main.
type Config struct {
	Port          int
	DBPath        string // empty = no database: in-memory accounts, read-only skills
	JWTSecret     string
	Production    bool
	PublicBaseURL string
	OAuth         map[string]OAuthCredentials // keyed by provider name
}

// Server is the HTTP server and its owned resources. The database connection
// (when configured) belongs to the server and is closed on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB // nil when no database is configured
}

// New assembles the full dependency chain and returns a ready-to-start
// server.
//
// STORAGE MODES:
// With a database path, accounts and skills both persist in SQLite. Without
// one, accounts live in an in-memory store and skill reads fall back to the
// fixed reference data — skill writes then fail with a configuration error.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	var (
		userRepo  repository.UserRepository
		skillRepo repository.SkillRepository
	)
	if cfg.DBPath != "" {
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.db = db
		userRepo = db
		skillRepo = db
	} else {
		logger.Warn("DB_PATH not set — accounts are in-memory and skill writes are disabled")
		userRepo = memory.NewUserStore()
	}

	if err := s.setupRoutes(userRepo, skillRepo); err != nil {
		if s.db != nil {
			s.db.Close()
		}
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the service and handler layers,
// and registers every route.
//
// MIDDLEWARE ORDER:
//  1. RequestID — assigns a unique id for tracing
//  2. RealIP   — extracts the client IP from proxy headers
//  3. Recoverer — turns panics into 500s instead of crashes
//  4. Logger   — logs each request with timing info
func (s *Server) setupRoutes(userRepo repository.UserRepository, skillRepo repository.SkillRepository) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	providers := make(map[string]*auth.Provider)
	for name, creds := range s.config.OAuth {
		if creds.ClientID == "" || creds.ClientSecret == "" {
			continue
		}
		callbackURL := fmt.Sprintf("%s/auth/%s/callback", s.config.PublicBaseURL, name)
		provider, err := auth.NewProvider(name, creds.ClientID, creds.ClientSecret, callbackURL)
		if err != nil {
			return fmt.Errorf("configuring OAuth provider %s: %w", name, err)
		}
		providers[name] = provider
		s.logger.Info("OAuth provider configured", slog.String("provider", name))
	}

	authService := service.NewAuthService(userRepo, tokens, passwords, s.logger)
	skillService := service.NewSkillService(skillRepo, s.logger)
	catalogService := service.NewCatalogService()

	authHandler := handler.NewAuthHandler(authService, providers, s.config.Production, s.config.PublicBaseURL, s.logger)
	skillHandler := handler.NewSkillHandler(skillService, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// OAuth browser round trips live outside /api — providers redirect here.
	s.router.Get("/auth/{provider}/login", authHandler.HandleOAuthLogin)
	s.router.Get("/auth/{provider}/callback", authHandler.HandleOAuthCallback)

	s.router.Route("/api", func(r chi.Router) {
		// OptionalAuth annotates the context with the session when a valid
		// cookie is present; no route is blocked by it.
		r.Use(auth.OptionalAuth(tokens))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
			r.Get("/me", authHandler.HandleMe)
			r.Post("/forgot-password", authHandler.HandleForgotPassword)
			r.Post("/reset-password", authHandler.HandleResetPassword)
		})

		r.Get("/characters", catalogHandler.HandleCharacters)
		r.Get("/items", catalogHandler.HandleItems)
		r.Get("/guides", catalogHandler.HandleGuides)
		r.Get("/search", catalogHandler.HandleSearch)

		r.Get("/skills", skillHandler.HandleList)
		r.Get("/skills/{id}", skillHandler.HandleGetByID)
		r.Post("/skills", skillHandler.HandleCreate)
		r.Put("/skills/{id}", skillHandler.HandleUpdate)
		r.Delete("/skills/{id}", skillHandler.HandleDelete)
	})

	return nil
}

// Router exposes the configured routes for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds
// to finish, and close the database so the WAL is flushed.
func (s *Server) Start() error {
	if s.db != nil {
		defer s.db.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

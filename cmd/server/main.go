// Package main is the entry point for the game wiki API server.
//
// main stays minimal: read configuration from the environment, build the
// logger, and hand everything to internal/server. All real logic lives in
// the internal packages.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sakif/game-wiki/internal/server"
)

func main() {
	// === 1. LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. CORE CONFIGURATION ===
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// APP_ENV=production flips the cookie Secure flag and stops the
	// forgot-password endpoint from echoing reset tokens.
	production := os.Getenv("APP_ENV") == "production"

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}

	// JWT_SECRET must be a long random string:
	//   JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if production {
			logger.Error("JWT_SECRET is required in production")
			os.Exit(1)
		}
		logger.Warn("JWT_SECRET not set — using an insecure development secret")
		jwtSecret = "insecure-dev-secret-change-me"
	}

	// === 3. DATABASE ===
	// DB_PATH is optional. Without it, accounts are in-memory and the skill
	// endpoints serve the fixed reference data read-only.
	dbPath := os.Getenv("DB_PATH")
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// === 4. OAUTH PROVIDERS ===
	// A provider is registered only when both its id and secret are set.
	oauth := make(map[string]server.OAuthCredentials)
	for _, name := range []string{"google", "github", "naver", "discord"} {
		prefix := strings.ToUpper(name)
		oauth[name] = server.OAuthCredentials{
			ClientID:     os.Getenv(prefix + "_CLIENT_ID"),
			ClientSecret: os.Getenv(prefix + "_CLIENT_SECRET"),
		}
	}

	// === 5. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:          port,
		DBPath:        dbPath,
		JWTSecret:     jwtSecret,
		Production:    production,
		PublicBaseURL: baseURL,
		OAuth:         oauth,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

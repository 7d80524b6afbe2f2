// Package main loads the fixed skill reference data into a SQLite database,
// so a fresh deployment starts with the same skill set the no-database
// fallback serves.
//
// Usage:
//
//	DB_PATH=data/wiki.db go run ./cmd/seed
//
// Seeding is idempotent by name: a skill whose name already exists in the
// database is skipped, so re-running never duplicates records.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/game-wiki/internal/gamedata"
	"github.com/sakif/game-wiki/internal/repository"
	"github.com/sakif/game-wiki/internal/repository/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		logger.Error("DB_PATH is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	existing, _, err := db.ListSkills(ctx, repository.SkillFilter{}, repository.ListOptions{Limit: 10000})
	if err != nil {
		logger.Error("failed to read existing skills", slog.String("error", err.Error()))
		os.Exit(1)
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.Name] = true
	}

	seeded, skipped := 0, 0
	for _, skill := range gamedata.Skills {
		if seen[skill.Name] {
			skipped++
			continue
		}

		// CreateSkill assigns a fresh id; the fixture ids are only meaningful to
		// the in-memory fallback.
		record := skill
		record.ID = ""
		if err := db.CreateSkill(ctx, &record); err != nil {
			logger.Error("failed to seed skill",
				slog.String("name", skill.Name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		seeded++
	}

	logger.Info("seeding complete",
		slog.String("database", dbPath),
		slog.Int("seeded", seeded),
		slog.Int("skipped", skipped),
	)
}

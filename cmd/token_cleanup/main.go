package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"taskboard/internal/database"
	"taskboard/internal/repository"
)

// Deletes refresh-token rows that can never be used again: expired ones, and
// revoked ones older than the retention window kept for audit. Meant to run
// from cron.
const revokedRetention = 30 * 24 * time.Hour

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRefreshTokenRepository(db)

	deleted, err := repo.DeleteStale(context.Background(), revokedRetention)
	if err != nil {
		slog.Error("token cleanup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("token cleanup completed", "deleted", deleted)
}

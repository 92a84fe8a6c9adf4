package main

import (
	"log"
	"log/slog"

	"podfolio-service/internal/config"
	"podfolio-service/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Running database migration...")

	if _, err := database.NewPostgresConnection(cfg.Database.DSN()); err != nil {
		log.Fatal("Migration failed:", err)
	}

	slog.Info("Migration complete")
}

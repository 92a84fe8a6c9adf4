package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"podfolio-service/internal/config"
	"podfolio-service/internal/database"
	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"
	"podfolio-service/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	podcastRepo := repository.NewPodcastRepository(db)
	podcastService := service.NewPodcastService(podcastRepo)

	slog.Info("Creating demo users...")

	demoUsers := []struct {
		username    string
		email       string
		displayName string
	}{
		{"alice", "alice@podfolio.dev", "Alice Tran"},
		{"bob", "bob@podfolio.dev", "Bob Nguyen"},
		{"carol", "carol@podfolio.dev", "Carol Le"},
	}

	password, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	users := make([]*models.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		user := &models.User{
			Username:    d.username,
			Email:       d.email,
			DisplayName: d.displayName,
			Password:    string(password),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			slog.Warn("User might already exist", "username", d.username, "error", err)
			if existing, ferr := userRepo.FindByUsername(ctx, d.username); ferr == nil {
				user = existing
			}
		} else {
			slog.Info("Created user", "id", user.ID, "username", user.Username)
		}
		users = append(users, user)
	}

	slog.Info("Creating demo listening logs...")

	demoLogs := []struct {
		user *models.User
		req  models.LogListenRequest
	}{
		{users[0], models.LogListenRequest{
			PodcastSourceID: "itunes:1200361736",
			PodcastName:     "The Daily",
			PodcastGenre:    "News",
			EpisodeTitle:    "Monday briefing",
			ListenedAt:      time.Now().Add(-48 * time.Hour),
			DurationSec:     1680,
			Rating:          4.5,
		}},
		{users[1], models.LogListenRequest{
			PodcastSourceID: "itunes:1535809341",
			PodcastName:     "Hard Fork",
			PodcastGenre:    "Technology",
			EpisodeTitle:    "The week in tech",
			ListenedAt:      time.Now().Add(-24 * time.Hour),
			DurationSec:     3600,
			Rating:          5,
			Review:          "Great episode on open models.",
		}},
	}

	for _, d := range demoLogs {
		logResp, err := podcastService.LogListen(ctx, d.user.ID, &d.req)
		if err != nil {
			slog.Warn("Failed to seed log", "user", d.user.Username, "error", err)
			continue
		}
		slog.Info("Created log", "id", logResp.ID, "user", d.user.Username, "podcast", d.req.PodcastName)
	}

	slog.Info("Seeding complete")
}

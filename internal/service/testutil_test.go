package service

import (
	"context"
	"testing"
	"time"

	"podfolio-service/internal/database"
	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database with the full schema so the
// unique indexes and transactions behave like production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		Email:       username + "@podfolio.dev",
		DisplayName: "The " + username,
		Password:    "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createLog(t *testing.T, db *gorm.DB, userID uint, podcastName string, listenedAt time.Time) *models.PodcastLog {
	t.Helper()

	repo := repository.NewPodcastRepository(db)
	catalog := &models.Podcast{
		SourceID: "test:" + podcastName,
		Name:     podcastName,
	}
	log := &models.PodcastLog{
		UserID:     userID,
		ListenedAt: listenedAt,
	}
	require.NoError(t, repo.CreateLog(context.Background(), catalog, log))
	return log
}

func newFriendService(db *gorm.DB) *FriendService {
	return NewFriendService(repository.NewUserRepository(db), repository.NewFriendRepository(db), nil)
}

func newConversationService(db *gorm.DB) *ConversationService {
	return NewConversationService(
		repository.NewConversationRepository(db),
		repository.NewUserRepository(db),
		repository.NewPodcastRepository(db),
		NewUnreadCache(nil),
		nil,
	)
}

func newEngagementService(db *gorm.DB) *EngagementService {
	return NewEngagementService(repository.NewEngagementRepository(db), repository.NewPodcastRepository(db))
}

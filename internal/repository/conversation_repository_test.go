package repository

import (
	"context"
	"testing"

	"podfolio-service/internal/database"
	"podfolio-service/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestConversationPairIsUnique(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Conversation{User1ID: 1, User2ID: 2}).Error)

	// A second insert for the same canonical pair trips the unique index.
	err := db.Create(&models.Conversation{User1ID: 1, User2ID: 2}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGetOrCreateSurvivesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	seeded := models.Conversation{User1ID: 3, User2ID: 7}
	require.NoError(t, db.Create(&seeded).Error)

	// Both argument orders land on the seeded row instead of inserting.
	conv, err := repo.GetOrCreate(ctx, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, conv.ID)

	conv, err = repo.GetOrCreate(ctx, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, conv.ID)
}

func TestFriendRequestPairIsUnique(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.FriendRequest{FromUserID: 1, ToUserID: 2}).Error)

	err := db.Create(&models.FriendRequest{FromUserID: 1, ToUserID: 2}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The opposite direction is a distinct pair.
	require.NoError(t, db.Create(&models.FriendRequest{FromUserID: 2, ToUserID: 1}).Error)
}

func TestLikePairIsUnique(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Like{UserID: 1, PostID: 5}).Error)

	err := db.Create(&models.Like{UserID: 1, PostID: 5}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

package service

import (
	"context"
	"testing"
	"time"

	"podfolio-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharePostSurfacesAtTopOfFeed(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Bob's listen is more recent, but Alice shares later.
	older := createLog(t, db, alice.ID, "The Daily", time.Now().Add(-72*time.Hour))
	newer := createLog(t, db, bob.ID, "Hard Fork", time.Now().Add(-time.Hour))

	require.NoError(t, svc.SharePost(ctx, bob.ID, newer.ID))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.SharePost(ctx, alice.ID, older.ID))

	feed, total, err := svc.ListSharedPosts(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, feed, 2)

	// Newest share first, regardless of listen time.
	assert.Equal(t, older.ID, feed[0].ID)
	assert.Equal(t, "alice", feed[0].Poster.Username)
	assert.Equal(t, newer.ID, feed[1].ID)

	// A fresh share carries zero engagement.
	assert.Zero(t, feed[0].Likes)
	assert.False(t, feed[0].Liked)
	assert.Empty(t, feed[0].Comments)

	// The original listen time survives the share.
	var stored models.PodcastLog
	require.NoError(t, db.First(&stored, older.ID).Error)
	assert.True(t, stored.Shared)
	require.NotNil(t, stored.SharedAt)
	assert.True(t, stored.ListenedAt.Before(*stored.SharedAt))
}

func TestFeedExcludesUnsharedLogs(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	shared := createLog(t, db, alice.ID, "Hard Fork", time.Now())
	createLog(t, db, alice.ID, "The Daily", time.Now())

	require.NoError(t, svc.SharePost(ctx, alice.ID, shared.ID))

	feed, total, err := svc.ListSharedPosts(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, feed, 1)
	assert.Equal(t, shared.ID, feed[0].ID)

	require.NoError(t, svc.UnsharePost(ctx, alice.ID, shared.ID))

	feed, total, err = svc.ListSharedPosts(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, feed)

	var stored models.PodcastLog
	require.NoError(t, db.First(&stored, shared.ID).Error)
	assert.False(t, stored.Shared)
	assert.Nil(t, stored.SharedAt)
}

func TestSharePostOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "Hard Fork", time.Now())

	assert.ErrorIs(t, svc.SharePost(ctx, bob.ID, log.ID), ErrNotLogOwner)
	assert.ErrorIs(t, svc.SharePost(ctx, alice.ID, 9999), ErrPostNotFound)
	assert.ErrorIs(t, svc.UnsharePost(ctx, bob.ID, log.ID), ErrNotLogOwner)
}

func TestSetLikeIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "Hard Fork", time.Now())
	require.NoError(t, svc.SharePost(ctx, alice.ID, log.ID))

	resp, err := svc.SetLike(ctx, bob.ID, log.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Likes)
	assert.True(t, resp.Liked)

	// Liking twice stays at one.
	resp, err = svc.SetLike(ctx, bob.ID, log.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Likes)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	resp, err = svc.SetLike(ctx, bob.ID, log.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.Likes)
	assert.False(t, resp.Liked)

	// Unliking with no row present is a no-op.
	resp, err = svc.SetLike(ctx, bob.ID, log.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.Likes)
}

func TestSetLikeRequiresSharedPost(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "Hard Fork", time.Now())

	_, err := svc.SetLike(ctx, bob.ID, log.ID, true)
	assert.ErrorIs(t, err, ErrPostNotShared)

	_, err = svc.SetLike(ctx, bob.ID, 9999, true)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "Hard Fork", time.Now())
	require.NoError(t, svc.SharePost(ctx, alice.ID, log.ID))

	first, err := svc.AddComment(ctx, bob.ID, log.ID, "  great pick  ")
	require.NoError(t, err)
	assert.Equal(t, "great pick", first.Text)
	assert.Equal(t, "bob", first.Username)

	// Same user may comment again on the same post.
	_, err = svc.AddComment(ctx, bob.ID, log.ID, "second thoughts")
	require.NoError(t, err)

	feed, _, err := svc.ListSharedPosts(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Comments, 2)
	assert.Equal(t, "great pick", feed[0].Comments[0].Text)
	assert.Equal(t, "second thoughts", feed[0].Comments[1].Text)
}

func TestAddCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	shared := createLog(t, db, alice.ID, "Hard Fork", time.Now())
	unshared := createLog(t, db, alice.ID, "The Daily", time.Now())
	require.NoError(t, svc.SharePost(ctx, alice.ID, shared.ID))

	_, err := svc.AddComment(ctx, bob.ID, shared.ID, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddComment(ctx, bob.ID, unshared.ID, "nice")
	assert.ErrorIs(t, err, ErrPostNotShared)

	_, err = svc.AddComment(ctx, bob.ID, 9999, "nice")
	assert.ErrorIs(t, err, ErrPostNotFound)

	// The blank comment must not have left a row behind.
	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListSharedPostsPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	for i := 0; i < 3; i++ {
		log := createLog(t, db, alice.ID, "Show "+string(rune('A'+i)), time.Now().Add(time.Duration(-i)*time.Hour))
		require.NoError(t, svc.SharePost(ctx, alice.ID, log.ID))
		time.Sleep(5 * time.Millisecond)
	}

	page1, total, err := svc.ListSharedPosts(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page1, 2)

	page2, _, err := svc.ListSharedPosts(ctx, alice.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	// Out-of-range arguments fall back to defaults instead of failing.
	all, _, err := svc.ListSharedPosts(ctx, alice.ID, 0, -5)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

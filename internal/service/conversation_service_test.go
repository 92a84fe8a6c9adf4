package service

import (
	"context"
	"testing"
	"time"

	"podfolio-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateConversationCanonical(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	first, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Reversed argument order resolves to the same row.
	second, err := svc.GetOrCreateConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	assert.Less(t, first.User1ID, first.User2ID)
}

func TestGetOrCreateConversationValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")

	_, err := svc.GetOrCreateConversation(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfConversation)

	_, err = svc.GetOrCreateConversation(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFirstMessageUnreadFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conv, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	msg, err := svc.PostMessage(ctx, conv.ID, alice.ID, "have you heard this one?")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.RecipientID)
	assert.False(t, msg.Read)

	unread, err := svc.UnreadConversationCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	// The sender has nothing unread.
	unread, err = svc.UnreadConversationCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	require.NoError(t, svc.MarkConversationRead(ctx, conv.ID, bob.ID))

	unread, err = svc.UnreadConversationCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	msgs, err := svc.ListMessages(ctx, conv.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)

	// Marking an already-read conversation is a no-op.
	require.NoError(t, svc.MarkConversationRead(ctx, conv.ID, bob.ID))
}

func TestUnreadCountsDistinctConversations(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	convAB, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	convCB, err := svc.GetOrCreateConversation(ctx, carol.ID, bob.ID)
	require.NoError(t, err)

	// Two messages in one thread still count as one unread conversation.
	_, err = svc.PostMessage(ctx, convAB.ID, alice.ID, "first")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, convAB.ID, alice.ID, "second")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, convCB.ID, carol.ID, "hello bob")
	require.NoError(t, err)

	unread, err := svc.UnreadConversationCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	require.NoError(t, svc.MarkConversationRead(ctx, convAB.ID, bob.ID))

	unread, err = svc.UnreadConversationCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestPostMessageValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	conv, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, conv.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.PostMessage(ctx, conv.ID, carol.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.PostMessage(ctx, 9999, alice.ID, "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	assert.ErrorIs(t, svc.MarkConversationRead(ctx, conv.ID, carol.ID), ErrNotParticipant)

	_, err = svc.ListMessages(ctx, conv.ID, carol.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMessageOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	conv, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Identical timestamps fall back to insertion order.
	at := time.Now().Truncate(time.Second)
	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, db.Create(&models.Message{
			ConversationID: conv.ID,
			SenderID:       alice.ID,
			RecipientID:    bob.ID,
			Text:           text,
			CreatedAt:      at,
		}).Error)
	}

	msgs, err := svc.ListMessages(ctx, conv.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)
	assert.Equal(t, "three", msgs[2].Text)
}

func TestSharePodcastToConversation(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "Hard Fork", time.Now().Add(-time.Hour))

	// No prior thread: sharing creates the conversation lazily.
	msg, err := svc.SharePodcastToConversation(ctx, alice.ID, log.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, msg.RecipientID)
	require.NotNil(t, msg.SharedLog)
	assert.Equal(t, log.ID, msg.SharedLog.ID)
	assert.Equal(t, "Hard Fork", msg.SharedLog.PodcastName)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The shared log rides along when the thread is listed.
	msgs, err := svc.ListMessages(ctx, msg.ConversationID, bob.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].SharedLog)
	assert.Equal(t, log.ID, msgs[0].SharedLog.ID)
}

func TestSharePodcastToConversationValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createLog(t, db, alice.ID, "The Daily", time.Now())

	_, err := svc.SharePodcastToConversation(ctx, bob.ID, log.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotLogOwner)

	_, err = svc.SharePodcastToConversation(ctx, alice.ID, 9999, bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.SharePodcastToConversation(ctx, alice.ID, log.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestListConversations(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	convAB, err := svc.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.GetOrCreateConversation(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, convAB.ID, bob.ID, "morning")
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	byParticipant := map[string]models.ConversationResponse{}
	for _, c := range convs {
		byParticipant[c.Participant.Username] = c
	}

	withBob := byParticipant["bob"]
	require.NotNil(t, withBob.LastMessage)
	assert.Equal(t, "morning", withBob.LastMessage.Text)
	assert.EqualValues(t, 1, withBob.UnreadCount)

	withCarol := byParticipant["carol"]
	assert.Nil(t, withCarol.LastMessage)
	assert.Zero(t, withCarol.UnreadCount)
}

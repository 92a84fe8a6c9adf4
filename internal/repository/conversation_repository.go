package repository

import (
	"context"
	"errors"

	"podfolio-service/internal/models"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	GetOrCreate(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	FindByID(ctx context.Context, id uint) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error)
	LastMessage(ctx context.Context, conversationID uint) (*models.Message, error)
	MarkRead(ctx context.Context, conversationID, recipientID uint) error
	UnreadCount(ctx context.Context, conversationID, recipientID uint) (int64, error)
	UnreadConversationCount(ctx context.Context, userID uint) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// GetOrCreate canonicalizes the pair (lower id first) and returns the
// existing conversation or inserts one. A concurrent insert for the same
// pair trips the unique index; the loser re-fetches the winner's row.
func (r *conversationRepository) GetOrCreate(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	u1, u2 := userA, userB
	if u1 > u2 {
		u1, u2 = u2, u1
	}

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{User1ID: u1, User2ID: u2}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Conversation
			if ferr := r.db.WithContext(ctx).
				Where("user1_id = ? AND user2_id = ?", u1, u2).
				First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return &existing, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages returns the conversation's total order: created_at
// ascending, ties broken by insertion id.
func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("SharedLog").
		Preload("SharedLog.Podcast").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *conversationRepository) LastMessage(ctx context.Context, conversationID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead flips every unread message addressed to recipientID in the
// conversation. Idempotent: zero rows affected is not an error.
func (r *conversationRepository) MarkRead(ctx context.Context, conversationID, recipientID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND read = ?", conversationID, recipientID, false).
		Update("read", true).Error
}

func (r *conversationRepository) UnreadCount(ctx context.Context, conversationID, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND read = ?", conversationID, recipientID, false).
		Count(&count).Error
	return count, err
}

// UnreadConversationCount counts distinct conversations with at least one
// unread message to the user, not raw messages. This is the notification
// badge number.
func (r *conversationRepository) UnreadConversationCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Distinct("conversation_id").
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

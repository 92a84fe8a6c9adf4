package repository

import (
	"context"

	"podfolio-service/internal/models"

	"gorm.io/gorm"
)

type FriendRepository interface {
	FindRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	FindRequestByPair(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error)
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	ReopenRequest(ctx context.Context, req *models.FriendRequest) error
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	RejectRequest(ctx context.Context, req *models.FriendRequest) error
	HasFriendship(ctx context.Context, userID, friendID uint) (bool, error)
	RemoveFriendship(ctx context.Context, userID, friendID uint) error
	ListFriends(ctx context.Context, userID uint) ([]models.Friendship, error)
	ListPendingSent(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	ListPendingReceived(ctx context.Context, userID uint) ([]models.FriendRequest, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) FindRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) FindRequestByPair(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ReopenRequest flips a rejected row back to pending in place. The row id
// is preserved; only status and updated_at change, so the pending list
// treats the resend as fresh.
func (r *friendRepository) ReopenRequest(ctx context.Context, req *models.FriendRequest) error {
	return r.db.WithContext(ctx).
		Model(req).
		Update("status", models.FriendRequestPending).Error
}

// AcceptRequest sets status=accepted and inserts both directed friendship
// rows in one transaction. If any write fails the whole operation rolls
// back, so an accepted status can never be committed without its edges.
func (r *friendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).
			Where("id = ?", req.ID).
			Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}
		edges := []models.Friendship{
			{UserID: req.FromUserID, FriendID: req.ToUserID},
			{UserID: req.ToUserID, FriendID: req.FromUserID},
		}
		return tx.Create(&edges).Error
	})
}

func (r *friendRepository) RejectRequest(ctx context.Context, req *models.FriendRequest) error {
	return r.db.WithContext(ctx).
		Model(req).
		Update("status", models.FriendRequestRejected).Error
}

func (r *friendRepository) HasFriendship(ctx context.Context, userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

// RemoveFriendship deletes both directed edges and any request row in
// either direction between the pair, atomically. A later send starts from
// a clean slate.
func (r *friendRepository) RemoveFriendship(ctx context.Context, userID, friendID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID, friendID, friendID, userID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.
			Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
				userID, friendID, friendID, userID).
			Delete(&models.FriendRequest{}).Error
	})
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Friend").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&friendships).Error
	return friendships, err
}

func (r *friendRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Where("from_user_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("updated_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *friendRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Where("to_user_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("updated_at DESC").
		Find(&requests).Error
	return requests, err
}

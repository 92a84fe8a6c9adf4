package repository

import (
	"context"
	"errors"

	"podfolio-service/internal/models"

	"gorm.io/gorm"
)

type EngagementRepository interface {
	AddLike(ctx context.Context, userID, postID uint) error
	RemoveLike(ctx context.Context, userID, postID uint) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
	CountLikesByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error)
	ListSharedLogs(ctx context.Context, offset, limit int) ([]models.PodcastLog, int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// AddLike is a no-op when the (user, post) row already exists: the unique
// index absorbs the duplicate, including the concurrent-add race.
func (r *engagementRepository) AddLike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Create(&models.Like{UserID: userID, PostID: postID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// RemoveLike is a no-op when no row exists.
func (r *engagementRepository) RemoveLike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

func (r *engagementRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) CountLikesByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *engagementRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListCommentsByPosts returns each post's comments oldest first.
func (r *engagementRepository) ListCommentsByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error) {
	grouped := make(map[uint][]models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	return grouped, nil
}

// ListSharedLogs is the public feed page: shared posts only, newest share
// first. shared_at falls back to listened_at for rows shared before the
// column existed.
func (r *engagementRepository) ListSharedLogs(ctx context.Context, offset, limit int) ([]models.PodcastLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.PodcastLog{}).
		Where("shared = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.PodcastLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Podcast").
		Where("shared = ?", true).
		Order("COALESCE(shared_at, listened_at) DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

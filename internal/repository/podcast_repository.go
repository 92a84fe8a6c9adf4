package repository

import (
	"context"
	"errors"

	"podfolio-service/internal/models"

	"gorm.io/gorm"
)

type PodcastRepository interface {
	CreateLog(ctx context.Context, catalog *models.Podcast, log *models.PodcastLog) error
	FindLogByID(ctx context.Context, id uint) (*models.PodcastLog, error)
	ListLogsByUser(ctx context.Context, userID uint, offset, limit int) ([]models.PodcastLog, int64, error)
	UpdateLog(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteLog(ctx context.Context, id uint) error
}

type podcastRepository struct {
	db *gorm.DB
}

func NewPodcastRepository(db *gorm.DB) PodcastRepository {
	return &podcastRepository{db: db}
}

// CreateLog resolves the catalog entry by external source id, creating it
// lazily if absent, and inserts the log in the same transaction. A
// concurrent first reference to the same source id is resolved through the
// unique index on podcasts.source_id.
func (r *podcastRepository) CreateLog(ctx context.Context, catalog *models.Podcast, log *models.PodcastLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var podcast models.Podcast
		err := tx.Where("source_id = ?", catalog.SourceID).First(&podcast).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			podcast = *catalog
			if cerr := tx.Create(&podcast).Error; cerr != nil {
				if errors.Is(cerr, gorm.ErrDuplicatedKey) {
					if ferr := tx.Where("source_id = ?", catalog.SourceID).First(&podcast).Error; ferr != nil {
						return ferr
					}
				} else {
					return cerr
				}
			}
		} else if err != nil {
			return err
		}

		log.PodcastID = podcast.ID
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		log.Podcast = podcast
		return nil
	})
}

func (r *podcastRepository) FindLogByID(ctx context.Context, id uint) (*models.PodcastLog, error) {
	var log models.PodcastLog
	err := r.db.WithContext(ctx).
		Preload("Podcast").
		Preload("User").
		First(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *podcastRepository) ListLogsByUser(ctx context.Context, userID uint, offset, limit int) ([]models.PodcastLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.PodcastLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.PodcastLog
	err := r.db.WithContext(ctx).
		Preload("Podcast").
		Where("user_id = ?", userID).
		Order("listened_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

func (r *podcastRepository) UpdateLog(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.PodcastLog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteLog removes the log together with its engagement rows. Messages
// that referenced the log keep their text but lose the shared reference.
func (r *podcastRepository) DeleteLog(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Message{}).
			Where("shared_log_id = ?", id).
			Update("shared_log_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PodcastLog{}, id).Error
	})
}

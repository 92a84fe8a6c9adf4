package service

import (
	"context"
	"errors"
	"time"

	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"

	"gorm.io/gorm"
)

var ErrLogNotFound = errors.New("podcast log not found")

// PodcastService is the content store: catalog resolution and listening
// logs. Logs start unshared; the feed side is EngagementService's job.
type PodcastService struct {
	logs repository.PodcastRepository
}

func NewPodcastService(logs repository.PodcastRepository) *PodcastService {
	return &PodcastService{logs: logs}
}

// LogListen records a listen, resolving the podcast by its external source
// id and creating the catalog entry on first reference.
func (s *PodcastService) LogListen(ctx context.Context, userID uint, req *models.LogListenRequest) (*models.PodcastLogResponse, error) {
	listenedAt := req.ListenedAt
	if listenedAt.IsZero() {
		listenedAt = time.Now()
	}

	catalog := &models.Podcast{
		SourceID:    req.PodcastSourceID,
		Name:        req.PodcastName,
		Genre:       req.PodcastGenre,
		Description: req.Description,
	}
	log := &models.PodcastLog{
		UserID:       userID,
		EpisodeTitle: req.EpisodeTitle,
		ListenedAt:   listenedAt,
		DurationSec:  req.DurationSec,
		Rating:       req.Rating,
		Review:       req.Review,
		Genre:        req.Genre,
		Shared:       false,
	}
	if err := s.logs.CreateLog(ctx, catalog, log); err != nil {
		return nil, err
	}

	resp := models.NewPodcastLogResponse(log)
	return &resp, nil
}

func (s *PodcastService) ListUserLogs(ctx context.Context, userID uint, page, pageSize int) ([]models.PodcastLogResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}

	logs, total, err := s.logs.ListLogsByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.PodcastLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, models.NewPodcastLogResponse(&logs[i]))
	}
	return responses, total, nil
}

// UpdateLog patches the user-owned mutable fields.
func (s *PodcastService) UpdateLog(ctx context.Context, ownerID, logID uint, req *models.UpdateLogRequest) error {
	log, err := s.findOwned(ctx, ownerID, logID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Review != nil {
		fields["review"] = *req.Review
	}
	if req.Genre != nil {
		fields["genre"] = *req.Genre
	}
	if len(fields) == 0 {
		return nil
	}
	return s.logs.UpdateLog(ctx, log.ID, fields)
}

// DeleteLog removes the log and its engagement rows atomically.
func (s *PodcastService) DeleteLog(ctx context.Context, ownerID, logID uint) error {
	log, err := s.findOwned(ctx, ownerID, logID)
	if err != nil {
		return err
	}
	return s.logs.DeleteLog(ctx, log.ID)
}

func (s *PodcastService) findOwned(ctx context.Context, ownerID, logID uint) (*models.PodcastLog, error) {
	log, err := s.logs.FindLogByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.UserID != ownerID {
		return nil, ErrNotLogOwner
	}
	return log, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrPostNotShared = errors.New("post is not shared")
	ErrNotLogOwner   = errors.New("log belongs to another user")
	ErrEmptyComment  = errors.New("comment text cannot be empty")
)

// EngagementService covers likes and comments on shared posts plus the
// public feed itself.
type EngagementService struct {
	engagement repository.EngagementRepository
	logs       repository.PodcastRepository
}

func NewEngagementService(engagement repository.EngagementRepository, logs repository.PodcastRepository) *EngagementService {
	return &EngagementService{engagement: engagement, logs: logs}
}

// SetLike adds or removes the viewer's like. Both directions are
// idempotent no-ops when already in the requested state, and the returned
// count is the post-operation total so callers need not re-query.
func (s *EngagementService) SetLike(ctx context.Context, userID, postID uint, liked bool) (*models.LikeCountResponse, error) {
	post, err := s.sharedPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.engagement.AddLike(ctx, userID, post.ID)
	} else {
		err = s.engagement.RemoveLike(ctx, userID, post.ID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.engagement.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &models.LikeCountResponse{PostID: post.ID, Likes: count, Liked: liked}, nil
}

// AddComment inserts unconditionally once the text survives trimming;
// a user may comment on the same post any number of times.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID uint, text string) (*models.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.sharedPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    userID,
		PostID:    post.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.engagement.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	comments, err := s.engagement.ListCommentsByPosts(ctx, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	for _, c := range comments[post.ID] {
		if c.ID == comment.ID {
			resp := commentResponse(&c)
			return &resp, nil
		}
	}
	resp := commentResponse(comment)
	return &resp, nil
}

// ListSharedPosts pages the public feed, newest share first, with
// engagement aggregates denormalized per entry.
func (s *EngagementService) ListSharedPosts(ctx context.Context, viewerID uint, page, pageSize int) ([]models.SharedPostResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	logs, total, err := s.engagement.ListSharedLogs(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	postIDs := make([]uint, 0, len(logs))
	for _, l := range logs {
		postIDs = append(postIDs, l.ID)
	}

	likeCounts, err := s.engagement.CountLikesByPosts(ctx, postIDs)
	if err != nil {
		return nil, 0, err
	}
	likedByViewer, err := s.engagement.LikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, 0, err
	}
	commentsByPost, err := s.engagement.ListCommentsByPosts(ctx, postIDs)
	if err != nil {
		return nil, 0, err
	}

	feed := make([]models.SharedPostResponse, 0, len(logs))
	for i := range logs {
		log := &logs[i]
		entry := models.SharedPostResponse{
			PodcastLogResponse: models.NewPodcastLogResponse(log),
			Poster:             models.NewUserResponse(&log.User),
			Likes:              likeCounts[log.ID],
			Liked:              likedByViewer[log.ID],
			Comments:           make([]models.CommentResponse, 0, len(commentsByPost[log.ID])),
		}
		for _, c := range commentsByPost[log.ID] {
			entry.Comments = append(entry.Comments, commentResponse(&c))
		}
		feed = append(feed, entry)
	}
	return feed, total, nil
}

// SharePost promotes a log into the public feed. The original listen time
// is preserved; only shared_at is bumped so the post surfaces on top.
func (s *EngagementService) SharePost(ctx context.Context, ownerID, logID uint) error {
	log, err := s.ownedLog(ctx, ownerID, logID)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.logs.UpdateLog(ctx, log.ID, map[string]interface{}{
		"shared":    true,
		"shared_at": now,
	})
}

// UnsharePost withdraws the log from the feed.
func (s *EngagementService) UnsharePost(ctx context.Context, ownerID, logID uint) error {
	log, err := s.ownedLog(ctx, ownerID, logID)
	if err != nil {
		return err
	}
	return s.logs.UpdateLog(ctx, log.ID, map[string]interface{}{
		"shared":    false,
		"shared_at": nil,
	})
}

func (s *EngagementService) sharedPost(ctx context.Context, postID uint) (*models.PodcastLog, error) {
	post, err := s.logs.FindLogByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !post.Shared {
		return nil, ErrPostNotShared
	}
	return post, nil
}

func (s *EngagementService) ownedLog(ctx context.Context, ownerID, logID uint) (*models.PodcastLog, error) {
	log, err := s.logs.FindLogByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if log.UserID != ownerID {
		return nil, ErrNotLogOwner
	}
	return log, nil
}

func commentResponse(c *models.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:          c.ID,
		PostID:      c.PostID,
		UserID:      c.UserID,
		Username:    c.User.Username,
		DisplayName: c.User.DisplayName,
		Text:        c.Text,
		CreatedAt:   c.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"podfolio-service/internal/events"
	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotRecipient     = errors.New("only the recipient can respond to a request")
	ErrInvalidAction    = errors.New("action must be accept or reject")
	ErrRequestClosed    = errors.New("friend request is no longer pending")
	ErrNotFriends       = errors.New("not friends")
)

// FriendService owns the friend-request state machine and the mutual
// friendship edges derived from it.
type FriendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
	events  events.Publisher
}

func NewFriendService(users repository.UserRepository, friends repository.FriendRepository, publisher events.Publisher) *FriendService {
	return &FriendService{users: users, friends: friends, events: publisher}
}

// SendFriendRequest creates a pending request from fromID to the named
// user, or reopens a previously rejected one in place. The pair's unique
// index is the backstop for concurrent sends: a constraint violation is
// reported as a duplicate, never as a storage error.
func (s *FriendService) SendFriendRequest(ctx context.Context, fromID uint, toUsername string) (*models.FriendRequestResponse, error) {
	target, err := s.users.FindByUsername(ctx, toUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == fromID {
		return nil, ErrSelfRequest
	}

	if friends, err := s.friends.HasFriendship(ctx, fromID, target.ID); err != nil {
		return nil, err
	} else if friends {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.friends.FindRequestByPair(ctx, fromID, target.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sender, err := s.users.FindByID(ctx, fromID)
	if err != nil {
		return nil, err
	}

	var req *models.FriendRequest
	switch {
	case existing == nil:
		req = &models.FriendRequest{
			FromUserID: fromID,
			ToUserID:   target.ID,
			Status:     models.FriendRequestPending,
		}
		if err := s.friends.CreateRequest(ctx, req); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateRequest
			}
			return nil, err
		}
	case existing.Status == models.FriendRequestPending:
		return nil, ErrDuplicateRequest
	case existing.Status == models.FriendRequestAccepted:
		return nil, ErrAlreadyFriends
	default:
		// Rejected: resurrect the same row rather than creating a new edge.
		if err := s.friends.ReopenRequest(ctx, existing); err != nil {
			return nil, err
		}
		existing.Status = models.FriendRequestPending
		req = existing
	}

	s.publish(events.Event{
		Type:      events.TypeFriendRequest,
		UserID:    target.ID,
		ActorID:   fromID,
		EntityID:  req.ID,
		CreatedAt: time.Now(),
	})

	return &models.FriendRequestResponse{
		ID:       req.ID,
		FromUser: models.NewUserResponse(sender),
		ToUser:   models.NewUserResponse(target),
		Status:   req.Status,
		SentAt:   req.UpdatedAt,
	}, nil
}

// RespondToRequest accepts or rejects a pending request. Accepting writes
// the status flip and both friendship edges in one transaction, so a
// half-applied accept cannot be observed.
func (s *FriendService) RespondToRequest(ctx context.Context, requestID, responderID uint, action string) error {
	if action != "accept" && action != "reject" {
		return ErrInvalidAction
	}

	req, err := s.friends.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if req.ToUserID != responderID {
		return ErrNotRecipient
	}
	if req.Status != models.FriendRequestPending {
		return ErrRequestClosed
	}

	if action == "reject" {
		return s.friends.RejectRequest(ctx, req)
	}

	if err := s.friends.AcceptRequest(ctx, req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFriends
		}
		return err
	}

	s.publish(events.Event{
		Type:      events.TypeFriendAccepted,
		UserID:    req.FromUserID,
		ActorID:   responderID,
		EntityID:  req.ID,
		CreatedAt: time.Now(),
	})
	return nil
}

// RemoveFriend deletes both directed edges and any request rows between
// the pair. Requires the forward edge to exist.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	friends, err := s.friends.HasFriendship(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !friends {
		return ErrNotFriends
	}
	return s.friends.RemoveFriendship(ctx, userID, friendID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.FriendResponse, error) {
	friendships, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, models.FriendResponse{
			ID:          f.FriendID,
			Username:    f.Friend.Username,
			DisplayName: f.Friend.DisplayName,
			FriendsAt:   f.CreatedAt,
		})
	}
	return responses, nil
}

func (s *FriendService) ListPendingSent(ctx context.Context, userID uint) ([]models.FriendRequestResponse, error) {
	requests, err := s.friends.ListPendingSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return requestResponses(requests), nil
}

func (s *FriendService) ListPendingReceived(ctx context.Context, userID uint) ([]models.FriendRequestResponse, error) {
	requests, err := s.friends.ListPendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return requestResponses(requests), nil
}

func requestResponses(requests []models.FriendRequest) []models.FriendRequestResponse {
	responses := make([]models.FriendRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, models.FriendRequestResponse{
			ID:       r.ID,
			FromUser: models.NewUserResponse(&r.FromUser),
			ToUser:   models.NewUserResponse(&r.ToUser),
			Status:   r.Status,
			SentAt:   r.UpdatedAt,
		})
	}
	return responses
}

func (s *FriendService) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event); err != nil {
		slog.Warn("failed to publish friend event", "type", event.Type, "error", err)
	}
}

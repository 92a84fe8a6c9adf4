package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"podfolio-service/internal/events"
	"podfolio-service/internal/models"
	"podfolio-service/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSelfConversation     = errors.New("cannot open a conversation with yourself")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message needs text or a shared log")
)

// ConversationService manages pairwise threads, message ordering and
// unread tracking.
type ConversationService struct {
	conversations repository.ConversationRepository
	users         repository.UserRepository
	logs          repository.PodcastRepository
	unread        *UnreadCache
	events        events.Publisher
}

func NewConversationService(
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	logs repository.PodcastRepository,
	unread *UnreadCache,
	publisher events.Publisher,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		logs:          logs,
		unread:        unread,
		events:        publisher,
	}
}

// GetOrCreateConversation returns the unique thread for the pair,
// creating it lazily. Both argument orders resolve to the same row.
func (s *ConversationService) GetOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	if userA == userB {
		return nil, ErrSelfConversation
	}
	if _, err := s.users.FindByID(ctx, userB); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.conversations.GetOrCreate(ctx, userA, userB)
}

// PostMessage appends a text message to the conversation. The recipient is
// the other participant; the message starts unread.
func (s *ConversationService) PostMessage(ctx context.Context, conversationID, senderID uint, text string) (*models.MessageResponse, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return s.appendMessage(ctx, conv, senderID, text, nil)
}

// SharePodcastToConversation cross-posts one of the sender's logs into the
// chat with the recipient, creating the conversation if needed.
func (s *ConversationService) SharePodcastToConversation(ctx context.Context, senderID, logID, recipientID uint) (*models.MessageResponse, error) {
	log, err := s.logs.FindLogByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if log.UserID != senderID {
		return nil, ErrNotLogOwner
	}

	conv, err := s.GetOrCreateConversation(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	return s.appendMessage(ctx, conv, senderID, "", &log.ID)
}

func (s *ConversationService) appendMessage(ctx context.Context, conv *models.Conversation, senderID uint, text string, sharedLogID *uint) (*models.MessageResponse, error) {
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	text = strings.TrimSpace(text)
	if text == "" && sharedLogID == nil {
		return nil, ErrEmptyMessage
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		RecipientID:    conv.OtherParticipant(senderID),
		Text:           text,
		SharedLogID:    sharedLogID,
		Read:           false,
		CreatedAt:      time.Now(),
	}
	if err := s.conversations.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.unread.Invalidate(ctx, msg.RecipientID)
	s.publish(events.Event{
		Type:      events.TypeNewMessage,
		UserID:    msg.RecipientID,
		ActorID:   senderID,
		EntityID:  msg.ID,
		CreatedAt: msg.CreatedAt,
	})

	resp := s.messageResponse(ctx, msg, sender)
	return &resp, nil
}

// MarkConversationRead flips every unread message addressed to the reader.
// Calling it again is a no-op.
func (s *ConversationService) MarkConversationRead(ctx context.Context, conversationID, readerID uint) error {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	if !conv.HasParticipant(readerID) {
		return ErrNotParticipant
	}

	if err := s.conversations.MarkRead(ctx, conversationID, readerID); err != nil {
		return err
	}
	s.unread.Invalidate(ctx, readerID)
	return nil
}

// UnreadConversationCount is the badge number: distinct conversations with
// at least one unread message to the user.
func (s *ConversationService) UnreadConversationCount(ctx context.Context, userID uint) (int64, error) {
	if count, ok := s.unread.Get(ctx, userID); ok {
		return count, nil
	}
	count, err := s.conversations.UnreadConversationCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.unread.Set(ctx, userID, count)
	return count, nil
}

// ListMessages returns the conversation's messages in total order.
func (s *ConversationService) ListMessages(ctx context.Context, conversationID, readerID uint) ([]models.MessageResponse, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(readerID) {
		return nil, ErrNotParticipant
	}

	msgs, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.MessageResponse, 0, len(msgs))
	for i := range msgs {
		responses = append(responses, s.messageResponse(ctx, &msgs[i], &msgs[i].Sender))
	}
	return responses, nil
}

// ListConversations builds the chat sidebar: the other participant, the
// latest message and the unread count per thread.
func (s *ConversationService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationResponse, error) {
	convs, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		other, err := s.users.FindByID(ctx, conv.OtherParticipant(userID))
		if err != nil {
			return nil, err
		}

		resp := models.ConversationResponse{
			ID:          conv.ID,
			Participant: models.NewUserResponse(other),
		}

		if last, err := s.conversations.LastMessage(ctx, conv.ID); err == nil {
			lastResp := s.messageResponse(ctx, last, &last.Sender)
			resp.LastMessage = &lastResp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		unread, err := s.conversations.UnreadCount(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		resp.UnreadCount = unread

		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *ConversationService) messageResponse(ctx context.Context, msg *models.Message, sender *models.User) models.MessageResponse {
	resp := models.MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		Text:           msg.Text,
		Read:           msg.Read,
		SentAt:         msg.CreatedAt,
	}
	if sender != nil {
		resp.SenderUsername = sender.Username
		resp.SenderDisplayName = sender.DisplayName
	}
	if msg.SharedLogID != nil {
		log := msg.SharedLog
		if log == nil || log.ID == 0 {
			if fetched, err := s.logs.FindLogByID(ctx, *msg.SharedLogID); err == nil {
				log = fetched
			}
		}
		if log != nil && log.ID != 0 {
			logResp := models.NewPodcastLogResponse(log)
			resp.SharedLog = &logResp
		}
	}
	return resp
}

func (s *ConversationService) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event); err != nil {
		slog.Warn("failed to publish conversation event", "type", event.Type, "error", err)
	}
}

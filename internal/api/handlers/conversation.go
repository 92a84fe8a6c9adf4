package handlers

import (
	"net/http"
	"strconv"

	"podfolio-service/internal/models"
	"podfolio-service/internal/service"
	"podfolio-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// ListConversations godoc
// @Summary      List the caller's conversations
// @Description  Each entry carries the other participant, the last message and the unread count.
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.ConversationResponse
// @Router       /conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	conversations, err := h.conversationService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// OpenConversation godoc
// @Summary      Open (or find) the conversation with another user
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Other user ID"
// @Success      200  {object}  models.Conversation
// @Failure      404  {object}  map[string]string
// @Router       /conversations/with/{id} [post]
func (h *ConversationHandler) OpenConversation(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	otherID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	conv, err := h.conversationService.GetOrCreateConversation(c.Request.Context(), userID, uint(otherID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListMessages godoc
// @Summary      List a conversation's messages
// @Description  Messages in creation order; ties broken by insertion order.
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Conversation ID"
// @Success      200  {array}   models.MessageResponse
// @Failure      403  {object}  map[string]string
// @Router       /conversations/{id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	messages, err := h.conversationService.ListMessages(c.Request.Context(), uint(conversationID), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage godoc
// @Summary      Send a message
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                        true  "Conversation ID"
// @Param        body  body      models.PostMessageRequest  true  "Message text"
// @Success      201   {object}  models.MessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /conversations/{id}/messages [post]
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	msg, err := h.conversationService.PostMessage(c.Request.Context(), uint(conversationID), userID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// SharePodcast godoc
// @Summary      Share one of your logs into a chat
// @Description  Creates the conversation with the recipient if none exists yet.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ShareToConversationRequest  true  "Log and recipient"
// @Success      201   {object}  models.MessageResponse
// @Failure      403   {object}  map[string]string
// @Router       /conversations/share [post]
func (h *ConversationHandler) SharePodcast(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.ShareToConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	msg, err := h.conversationService.SharePodcastToConversation(c.Request.Context(), userID, req.LogID, req.RecipientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// MarkRead godoc
// @Summary      Mark a conversation as read
// @Description  Flips every unread message addressed to the caller. Idempotent.
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Conversation ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /conversations/{id}/read [put]
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation ID"})
		return
	}

	if err := h.conversationService.MarkConversationRead(c.Request.Context(), uint(conversationID), userID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conversation marked read"})
}

// UnreadCount godoc
// @Summary      Unread conversation count
// @Description  Number of distinct conversations with at least one unread message, not a message count.
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Router       /conversations/unread-count [get]
func (h *ConversationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	count, err := h.conversationService.UnreadConversationCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadConversations": count})
}

package handlers

import (
	"net/http"
	"strconv"

	"podfolio-service/internal/models"
	"podfolio-service/internal/service"
	"podfolio-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	engagementService *service.EngagementService
}

func NewFeedHandler(engagementService *service.EngagementService) *FeedHandler {
	return &FeedHandler{engagementService: engagementService}
}

// ListSharedPosts godoc
// @Summary      The public feed
// @Description  Shared posts, newest share first, with poster identity, like counts and comments.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (1-based)"
// @Param        pageSize  query     int  false  "Page size (max 50)"
// @Success      200       {array}   models.SharedPostResponse
// @Router       /feed [get]
func (h *FeedHandler) ListSharedPosts(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	posts, total, err := h.engagementService.ListSharedPosts(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total, "page": page})
}

// SetLike godoc
// @Summary      Like or unlike a shared post
// @Description  Idempotent in both directions; returns the resulting like count.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Post ID"
// @Param        body  body      models.SetLikeRequest  true  "Desired state"
// @Success      200   {object}  models.LikeCountResponse
// @Failure      404   {object}  map[string]string
// @Router       /feed/{id}/like [put]
func (h *FeedHandler) SetLike(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	var req models.SetLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Liked == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	result, err := h.engagementService.SetLike(c.Request.Context(), userID, uint(postID), *req.Liked)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddComment godoc
// @Summary      Comment on a shared post
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Post ID"
// @Param        body  body      models.AddCommentRequest  true  "Comment text"
// @Success      201   {object}  models.CommentResponse
// @Failure      400   {object}  map[string]string
// @Router       /feed/{id}/comments [post]
func (h *FeedHandler) AddComment(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	comment, err := h.engagementService.AddComment(c.Request.Context(), userID, uint(postID), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// SharePost godoc
// @Summary      Share one of your logs to the feed
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Log ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /feed/share/{id} [put]
func (h *FeedHandler) SharePost(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
		return
	}

	if err := h.engagementService.SharePost(c.Request.Context(), userID, uint(logID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post shared"})
}

// UnsharePost godoc
// @Summary      Withdraw one of your logs from the feed
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Log ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /feed/share/{id} [delete]
func (h *FeedHandler) UnsharePost(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
		return
	}

	if err := h.engagementService.UnsharePost(c.Request.Context(), userID, uint(logID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post unshared"})
}

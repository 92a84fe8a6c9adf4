package handlers

import (
	"net/http"
	"strconv"

	"podfolio-service/internal/models"
	"podfolio-service/internal/service"
	"podfolio-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request by username. A previously rejected request is reopened in place.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.SendFriendRequestInput  true  "Target username"
// @Success      201   {object}  models.FriendRequestResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	var input models.SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	req, err := h.friendService.SendFriendRequest(c.Request.Context(), userID, input.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

// RespondToRequest godoc
// @Summary      Accept or reject a friend request
// @Description  Only the recipient may respond. Accepting creates both friendship edges atomically.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                               true  "Request ID"
// @Param        body  body      models.RespondFriendRequestInput  true  "accept or reject"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /friends/requests/{id} [put]
func (h *FriendHandler) RespondToRequest(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var input models.RespondFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.friendService.RespondToRequest(c.Request.Context(), uint(requestID), userID, input.Action); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request " + input.Action + "ed"})
}

// RemoveFriend godoc
// @Summary      Unfriend a user
// @Description  Removes both friendship edges and any request rows between the pair.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /friends/{id} [delete]
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend ID"})
		return
	}

	if err := h.friendService.RemoveFriend(c.Request.Context(), userID, uint(friendID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "friend removed"})
}

// ListFriends godoc
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.FriendResponse
// @Router       /friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListPendingSent godoc
// @Summary      List pending requests the caller has sent
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.FriendRequestResponse
// @Router       /friends/requests/sent [get]
func (h *FriendHandler) ListPendingSent(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	requests, err := h.friendService.ListPendingSent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListPendingReceived godoc
// @Summary      List pending requests addressed to the caller
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.FriendRequestResponse
// @Router       /friends/requests/received [get]
func (h *FriendHandler) ListPendingReceived(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	requests, err := h.friendService.ListPendingReceived(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

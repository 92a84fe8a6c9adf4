package handlers

import (
	"net/http"

	"podfolio-service/internal/service"
	"podfolio-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.UserResponse
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SearchUsers godoc
// @Summary      Search users
// @Description  Case-insensitive substring match on username or display name, excluding the caller, capped at 10 results.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search query"
// @Success      200  {array}   models.UserResponse
// @Router       /users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	query := c.Query("q")

	users, err := h.userService.SearchUsers(c.Request.Context(), query, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

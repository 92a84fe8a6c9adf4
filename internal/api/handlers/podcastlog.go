package handlers

import (
	"net/http"
	"strconv"

	"podfolio-service/internal/models"
	"podfolio-service/internal/service"
	"podfolio-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type PodcastLogHandler struct {
	podcastService *service.PodcastService
}

func NewPodcastLogHandler(podcastService *service.PodcastService) *PodcastLogHandler {
	return &PodcastLogHandler{podcastService: podcastService}
}

// LogListen godoc
// @Summary      Record a listen
// @Description  Resolves the podcast by external source id, creating the catalog entry if needed.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.LogListenRequest  true  "Listen details"
// @Success      201   {object}  models.PodcastLogResponse
// @Failure      400   {object}  map[string]string
// @Router       /logs [post]
func (h *PodcastLogHandler) LogListen(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req models.LogListenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	log, err := h.podcastService.LogListen(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// ListLogs godoc
// @Summary      List own listening logs
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        page      query    int  false  "Page (1-based)"
// @Param        pageSize  query    int  false  "Page size (max 50)"
// @Success      200       {array}  models.PodcastLogResponse
// @Router       /logs [get]
func (h *PodcastLogHandler) ListLogs(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	logs, total, err := h.podcastService.ListUserLogs(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total, "page": page})
}

// UpdateLog godoc
// @Summary      Update a log's rating, review or genre
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Log ID"
// @Param        body  body      models.UpdateLogRequest  true  "Fields to update"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /logs/{id} [put]
func (h *PodcastLogHandler) UpdateLog(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
		return
	}

	var req models.UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.podcastService.UpdateLog(c.Request.Context(), userID, uint(logID), &req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "log updated"})
}

// DeleteLog godoc
// @Summary      Delete a log
// @Description  Also removes the log's likes and comments; chat messages keep their text.
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Log ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /logs/{id} [delete]
func (h *PodcastLogHandler) DeleteLog(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
		return
	}

	if err := h.podcastService.DeleteLog(c.Request.Context(), userID, uint(logID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}

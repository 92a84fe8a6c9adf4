package response

import (
	"errors"
	"net/http"

	"podfolio-service/internal/service"

	"github.com/gin-gonic/gin"
)

// Status maps a service error onto its HTTP status. Unknown errors are
// internal: storage failures must never leak as client faults.
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrSelfConversation),
		errors.Is(err, service.ErrPostNotShared):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotRecipient),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotLogOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrConversationNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrNotFriends):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrRequestClosed),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the error as the standard JSON error body. Internal errors
// are masked with a generic message.
func Error(c *gin.Context, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

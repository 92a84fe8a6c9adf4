package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"podfolio-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrEmptyComment, http.StatusBadRequest},
		{service.ErrSelfRequest, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrNotLogOwner, http.StatusForbidden},
		{service.ErrNotParticipant, http.StatusForbidden},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrPostNotFound, http.StatusNotFound},
		{service.ErrDuplicateRequest, http.StatusConflict},
		{service.ErrAlreadyFriends, http.StatusConflict},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), "error %q", tc.err)
	}
}

func TestErrorMasksInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, service.ErrAlreadyFriends)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"already friends"}`, w.Body.String())
}

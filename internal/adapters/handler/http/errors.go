package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-dashboard/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/focus"
)

func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var pErr *domain.PersistenceError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
	case errors.Is(err, domain.ErrGoalAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "goal already exists"})
	case errors.Is(err, focus.ErrSessionRunning):
		c.JSON(http.StatusConflict, gin.H{"error": "focus session is running, pause or reset it first"})
	case errors.Is(err, focus.ErrManagerClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})
	case errors.As(err, &pErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable", "op": pErr.Op})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

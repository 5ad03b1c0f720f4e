package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/focus"
)

type FocusHandler struct {
	focus *focus.Manager
}

func NewFocusHandler(manager *focus.Manager) *FocusHandler {
	return &FocusHandler{focus: manager}
}

type focusDurationRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type focusStartRequest struct {
	Task string `json:"task"`
}

func (h *FocusHandler) RegisterRoutes(router *gin.RouterGroup) {
	f := router.Group("/focus")
	{
		f.GET("", h.Get)
		f.PUT("/duration", h.SetDuration)
		f.POST("/start", h.Start)
		f.POST("/pause", h.Pause)
		f.POST("/reset", h.Reset)
	}
}

func (h *FocusHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.focus.Get(userID))
}

func (h *FocusHandler) SetDuration(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req focusDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.focus.SetDuration(userID, time.Duration(req.Minutes)*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Start begins or resumes the countdown. The server ticks it; completion
// shows up in GET /events.
func (h *FocusHandler) Start(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req focusStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.focus.Start(userID, req.Task)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *FocusHandler) Pause(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.focus.Pause(userID))
}

func (h *FocusHandler) Reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.focus.Reset(userID))
}

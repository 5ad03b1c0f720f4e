package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type addHabitRequest struct {
	Name string `json:"name"`
}

type setTopicRequest struct {
	Topic string `json:"topic"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("/today", h.Today)
		habits.POST("", h.Add)
		habits.POST("/:id/toggle", h.Toggle)
		habits.PUT("/:id/topic", h.SetTopic)
	}
}

func (h *HabitHandler) Today(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, habits, err := h.svc.Today(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   day,
		"habits": habits,
	})
}

func (h *HabitHandler) Add(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req addHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	habit, err := h.svc.AddCustomHabit(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.ToggleHabit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) SetTopic(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req setTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	habit, err := h.svc.SetTopic(c.Request.Context(), userID, c.Param("id"), req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

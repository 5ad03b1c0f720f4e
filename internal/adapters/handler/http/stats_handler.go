package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

type StatsHandler struct {
	habits *services.HabitService
	svc    *services.StatsService
}

func NewStatsHandler(habits *services.HabitService, svc *services.StatsService) *StatsHandler {
	return &StatsHandler{habits: habits, svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/today", h.Today)
		stats.GET("/weekly", h.Weekly)
		stats.GET("/heatmap", h.Heatmap)
		stats.GET("/calendar", h.Calendar)
	}
}

func (h *StatsHandler) Today(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := h.habits.TodayStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) Weekly(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	weekly, err := h.svc.Weekly(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, weekly)
}

func (h *StatsHandler) Heatmap(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	days := services.HeatmapWindowDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days, expected an integer"})
			return
		}
		days = n
	}

	summary, err := h.svc.Heatmap(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) Calendar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	now := h.svc.Today().Time(nil)
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year, expected an integer"})
			return
		}
		year = n
	}
	if raw := c.Query("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected 1-12"})
			return
		}
		month = n
	}

	cal, err := h.svc.Calendar(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}

package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/workers"
)

const defaultEventLimit = 20

type LearningHandler struct {
	svc   *services.LearningService
	stats *services.StatsService
	feed  *workers.EventFeed
}

func NewLearningHandler(svc *services.LearningService, stats *services.StatsService, feed *workers.EventFeed) *LearningHandler {
	return &LearningHandler{svc: svc, stats: stats, feed: feed}
}

func (h *LearningHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/learning", h.Log)
	router.GET("/quote", h.Quote)
	router.GET("/events", h.Events)
}

func (h *LearningHandler) Log(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	log, err := h.svc.Log(c.Request.Context(), userID, c.Query("domain"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *LearningHandler) Quote(c *gin.Context) {
	day := h.stats.Today()
	c.JSON(http.StatusOK, gin.H{
		"date":  day,
		"quote": domain.QuoteForDay(day),
	})
}

func (h *LearningHandler) Events(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit, expected a positive integer"})
			return
		}
		limit = n
	}

	events := []domain.Event{}
	if h.feed != nil {
		events = append(events, h.feed.Recent(userID, limit)...)
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	HabitHandler    *HabitHandler
	StatsHandler    *StatsHandler
	GoalHandler     *GoalHandler
	LearningHandler *LearningHandler
	FocusHandler    *FocusHandler

	// Tokens is nil in local mode; every request is then attributed to LocalUser.
	Tokens    middleware.TokenValidator
	LocalUser string

	DB         *sqlx.DB
	Redis      *redis.Client
	RateLimit  int
	RateWindow time.Duration
	Logger     *zap.Logger
	StartTime  time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")
	if deps.Tokens != nil {
		apiV1.Use(middleware.AuthMiddleware(deps.Tokens))
	} else {
		apiV1.Use(middleware.LocalUserMiddleware(deps.LocalUser))
	}
	if deps.Redis != nil && deps.RateLimit > 0 {
		apiV1.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	if deps.HabitHandler != nil {
		deps.HabitHandler.RegisterRoutes(apiV1)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(apiV1)
	}
	if deps.GoalHandler != nil {
		deps.GoalHandler.RegisterRoutes(apiV1)
	}
	if deps.LearningHandler != nil {
		deps.LearningHandler.RegisterRoutes(apiV1)
	}
	if deps.FocusHandler != nil {
		deps.FocusHandler.RegisterRoutes(apiV1)
	}

	return router
}

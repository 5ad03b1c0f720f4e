package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterMiddleware allows limit requests per subject in fixed windows
// aligned to multiples of window. The subject is the user set by the auth
// middleware when it ran first, otherwise the client IP. Redis errors let
// the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			subject = "user:" + userID
		}

		now := time.Now()
		start := now.Truncate(window)
		reset := start.Add(window)
		key := fmt.Sprintf("rate_limit:%s:%d", subject, start.Unix())

		ctx := c.Request.Context()
		var incr *redis.IntCmd
		_, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
			incr = p.Incr(ctx, key)
			p.ExpireAt(ctx, key, reset)
			return nil
		})
		if err != nil {
			logger.Warn("rate limiter skipped, redis error", zap.String("subject", subject), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(limit)-count)))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(math.Ceil(reset.Sub(now).Seconds())),
			})
			return
		}

		c.Next()
	}
}

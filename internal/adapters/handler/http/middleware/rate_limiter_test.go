package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comitanigiacomo/kanso-dashboard/internal/adapters/cache"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLimiterRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../../../.env")

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{
		Host:     envOr("REDIS_HOST", "localhost"),
		Port:     envOr("REDIS_PORT", "6379"),
		Password: envOr("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

// limitedRouter uses a day-long window so a run never straddles a reset.
// A non-empty X-User-ID header plays the part of the auth middleware.
func limitedRouter(rdb *redis.Client, limit int, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	})
	router.Use(RateLimiterMiddleware(rdb, limit, 24*time.Hour, logger))
	router.GET("/api/v1/habits/today", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	return hitAs(router, ip, "")
}

func hitAs(router *gin.Engine, ip, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/habits/today", nil)
	req.Header.Set("X-Forwarded-For", ip)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := setupLimiterRedis(t)

	t.Run("Success: Remaining counts down", func(t *testing.T) {
		router := limitedRouter(rdb, 3, nil)

		for i := 1; i <= 3; i++ {
			w := hit(router, "10.0.0.1")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(3-i), w.Header().Get("X-RateLimit-Remaining"))

			reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
			require.NoError(t, err)
			assert.Greater(t, reset, time.Now().Unix())
			assert.LessOrEqual(t, reset, time.Now().Add(24*time.Hour).Unix())
		}
	})

	t.Run("Fail: 429 over the limit", func(t *testing.T) {
		router := limitedRouter(rdb, 2, nil)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)

		w := hit(router, "10.0.0.2")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "too many requests")
		assert.Contains(t, w.Body.String(), "retry_in_s")
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Success: Clients are counted separately", func(t *testing.T) {
		router := limitedRouter(rdb, 1, nil)

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.3").Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.3").Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.4").Code)
	})

	t.Run("Success: Authenticated users are counted by id", func(t *testing.T) {
		router := limitedRouter(rdb, 1, nil)

		assert.Equal(t, http.StatusOK, hitAs(router, "10.0.0.6", "alice").Code)
		assert.Equal(t, http.StatusOK, hitAs(router, "10.0.0.6", "bob").Code)
		assert.Equal(t, http.StatusTooManyRequests, hitAs(router, "10.0.0.7", "alice").Code)
	})
}

func TestRateLimiterMiddleware_FailOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	badRdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer badRdb.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	router := limitedRouter(badRdb, 5, zap.New(core))

	w := hit(router, "10.0.0.5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("rate limiter skipped, redis error").Len())
}

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Options{Host: "127.0.0.1", Port: "1"})

	assert.Nil(t, rdb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestNewRedisClient_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	opts := Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       2,
	}

	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, opts)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	require.NoError(t, rdb.FlushDB(ctx).Err())

	t.Run("Selected database", func(t *testing.T) {
		assert.Equal(t, 2, rdb.Options().DB)
		assert.Equal(t, opts.Host+":"+opts.Port, rdb.Options().Addr)
	})

	t.Run("Day entries expire", func(t *testing.T) {
		key := "habit_logs:test-user:2025-03-10"
		require.NoError(t, rdb.Set(ctx, key, `[{"habit_id":"java","completed":true}]`, time.Minute).Err())

		ttl, err := rdb.TTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}

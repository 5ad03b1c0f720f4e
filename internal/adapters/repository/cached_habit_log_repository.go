package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const DefaultCacheTTL = 30 * time.Minute

var _ domain.HabitLogRepository = (*CachedHabitLogRepository)(nil)

// CachedHabitLogRepository keeps single-day reads in Redis. Range reads go
// straight to the wrapped repository.
type CachedHabitLogRepository struct {
	next   domain.HabitLogRepository
	cache  *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewCachedHabitLogRepository(next domain.HabitLogRepository, cache *redis.Client, logger *zap.Logger, ttl time.Duration) *CachedHabitLogRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedHabitLogRepository{
		next:   next,
		cache:  cache,
		logger: logger.With(zap.String("component", "cache")),
		ttl:    ttl,
	}
}

func (r *CachedHabitLogRepository) cacheKey(userID string, day domain.DayKey) string {
	return fmt.Sprintf("habit_logs:%s:%s", userID, day)
}

func (r *CachedHabitLogRepository) invalidate(ctx context.Context, userID string, day domain.DayKey) {
	if err := r.cache.Del(ctx, r.cacheKey(userID, day)).Err(); err != nil {
		r.logger.Warn("failed to invalidate", zap.String("user_id", userID), zap.String("date", day.String()), zap.Error(err))
	}
}

func (r *CachedHabitLogRepository) Get(ctx context.Context, userID string, day domain.DayKey) ([]domain.HabitRecord, error) {
	key := r.cacheKey(userID, day)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var records []domain.HabitRecord
		if err := json.Unmarshal([]byte(val), &records); err == nil {
			return records, nil
		}

		r.logger.Warn("corrupted entry, cleaning up key", zap.String("key", key))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.Error(err))
	}

	records, err := r.next.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.logger.Warn("redis set error", zap.Error(setErr))
		}
	}

	return records, nil
}

func (r *CachedHabitLogRepository) ListRange(ctx context.Context, userID string, from, to domain.DayKey) ([]domain.HabitRecord, error) {
	return r.next.ListRange(ctx, userID, from, to)
}

func (r *CachedHabitLogRepository) Upsert(ctx context.Context, record domain.HabitRecord) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.UserID, record.Date)
	return nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-dashboard/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-dashboard/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-dashboard/internal/config"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/focus"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/workers"
)

// App holds the wired services of one process.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB    *sqlx.DB
	Redis *redis.Client

	Worker *workers.PersistWorker
	Feed   *workers.EventFeed
	Focus  *focus.Manager

	Habits   *services.HabitService
	Stats    *services.StatsService
	Goals    *services.GoalService
	Learning *services.LearningService
	Tokens   *services.TokenService

	cancel    context.CancelFunc
	startTime time.Time
}

// New opens the configured storage and starts the persist worker. Close must
// be called to flush pending writes.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, startTime: time.Now()}

	logs, goals, err := a.openStorage(ctx)
	if err != nil {
		a.closeStores()
		return nil, err
	}

	clock := services.NewSystemClock(cfg.Location)

	a.Worker = workers.NewPersistWorker(logs, logger.Named("persist"), cfg.QueueSize)
	a.Feed = workers.NewEventFeed(logger.Named("events"), workers.DefaultFeedSize)
	a.Focus = focus.NewManager(a.Feed, time.Second)

	a.Habits = services.NewHabitService(logs, a.Worker, a.Feed, clock)
	a.Stats = services.NewStatsService(logs, a.Habits, clock)
	a.Goals = services.NewGoalService(goals, clock, cfg.MissionTotalDays, cfg.MissionStartDate)
	a.Learning = services.NewLearningService(logs, a.Habits, clock, cfg.LearningLookbackDays)
	if cfg.AuthEnabled() {
		a.Tokens = services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Worker.Start(workerCtx)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (domain.HabitLogRepository, domain.GoalRepository, error) {
	cfg := a.Config

	switch cfg.Storage {
	case config.StorageMemory:
		a.Logger.Info("using in-memory storage")
		return repository.NewInMemoryHabitLogRepository(), repository.NewInMemoryGoalRepository(), nil

	case config.StorageLocal:
		a.Logger.Info("using local storage", zap.String("path", cfg.LocalPath))
		return repository.NewLocalHabitLogRepository(cfg.LocalPath), repository.NewLocalGoalRepository(cfg.LocalPath), nil

	case config.StoragePostgres:
		a.Logger.Info("connecting to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))
		db, err := repository.Connect(ctx, cfg.DB.Driver, cfg.DB.DSN())
		if err != nil {
			return nil, nil, err
		}
		a.DB = db
		if err := repository.Migrate(ctx, db); err != nil {
			return nil, nil, err
		}

		var logs domain.HabitLogRepository = repository.NewPostgresHabitLogRepository(db)
		if cfg.Redis.Enabled {
			rdb, err := cache.NewRedisClient(ctx, cache.Options{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err != nil {
				a.Logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			} else {
				a.Redis = rdb
				logs = repository.NewCachedHabitLogRepository(logs, rdb, a.Logger.Named("cache"), cfg.Redis.CacheTTL)
			}
		}
		return logs, repository.NewPostgresGoalRepository(db), nil
	}

	return nil, nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
}

// Router builds the HTTP API on top of the wired services.
func (a *App) Router() *gin.Engine {
	deps := adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(a.Habits),
		StatsHandler:    adapterHTTP.NewStatsHandler(a.Habits, a.Stats),
		GoalHandler:     adapterHTTP.NewGoalHandler(a.Goals),
		LearningHandler: adapterHTTP.NewLearningHandler(a.Learning, a.Stats, a.Feed),
		FocusHandler:    adapterHTTP.NewFocusHandler(a.Focus),
		LocalUser:       a.Config.LocalUser,
		DB:              a.DB,
		Redis:           a.Redis,
		RateLimit:       a.Config.RateLimit,
		RateWindow:      a.Config.RateWindow,
		Logger:          a.Logger,
		StartTime:       a.startTime,
	}
	if a.Tokens != nil {
		deps.Tokens = a.Tokens
	}
	return adapterHTTP.NewRouter(deps)
}

// Close stops the worker after it has written everything queued, then
// releases the stores.
func (a *App) Close() {
	if a.Focus != nil {
		a.Focus.Close()
	}
	if a.cancel != nil {
		a.cancel()
		a.Worker.Wait()
	}
	if stats := a.Worker.Stats(); stats.Failed > 0 || stats.Dropped > 0 {
		a.Logger.Warn("some habit writes were not persisted",
			zap.Int("failed", stats.Failed),
			zap.Int("dropped", stats.Dropped),
		)
	}
	a.closeStores()
}

func (a *App) closeStores() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("failed to close database", zap.Error(err))
		}
	}
}

package workers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const DefaultQueueSize = 100

type RecordStore interface {
	Upsert(ctx context.Context, record domain.HabitRecord) error
}

// PersistWorker drains habit upserts in FIFO order on a single goroutine, so
// the last write for a key is the one that lands. Failed writes are logged and
// never retried.
type PersistWorker struct {
	store  RecordStore
	logger *zap.Logger
	jobs   chan domain.HabitRecord

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	failed  int
	dropped int
}

func NewPersistWorker(store RecordStore, logger *zap.Logger, queueSize int) *PersistWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersistWorker{
		store:  store,
		logger: logger,
		jobs:   make(chan domain.HabitRecord, queueSize),
	}
}

func (w *PersistWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("persist worker started", zap.Int("queue_size", cap(w.jobs)))
		for {
			select {
			case record := <-w.jobs:
				w.process(ctx, record)
			case <-ctx.Done():
				w.drain()
				w.logger.Info("persist worker shutting down")
				return
			}
		}
	}()
}

func (w *PersistWorker) Enqueue(record domain.HabitRecord) {
	select {
	case w.jobs <- record:
	default:
		w.mu.Lock()
		w.dropped++
		w.mu.Unlock()
		w.logger.Warn("persist queue full, dropping write",
			zap.String("user_id", record.UserID),
			zap.String("habit_id", record.HabitID),
			zap.String("date", record.Date.String()),
		)
	}
}

// Wait blocks until the worker goroutine has exited. Cancel the context
// passed to Start first.
func (w *PersistWorker) Wait() {
	w.wg.Wait()
}

// Flush writes everything currently queued on the caller's goroutine. Used by
// short-lived processes that never call Start.
func (w *PersistWorker) Flush(ctx context.Context) {
	for {
		select {
		case record := <-w.jobs:
			w.process(ctx, record)
		default:
			return
		}
	}
}

// drain flushes what is left in the queue once the worker context is gone.
func (w *PersistWorker) drain() {
	w.Flush(context.Background())
}

func (w *PersistWorker) process(ctx context.Context, record domain.HabitRecord) {
	if err := w.store.Upsert(ctx, record); err != nil {
		w.mu.Lock()
		w.failed++
		w.mu.Unlock()

		pErr := domain.NewPersistenceError("upsert", err)
		w.logger.Error("failed to persist habit record",
			zap.String("user_id", record.UserID),
			zap.String("habit_id", record.HabitID),
			zap.String("date", record.Date.String()),
			zap.Error(pErr),
		)
		return
	}
	w.logger.Debug("habit record persisted",
		zap.String("habit_id", record.HabitID),
		zap.Bool("completed", record.Completed),
	)
}

type Stats struct {
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Dropped int `json:"dropped"`
}

func (w *PersistWorker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{
		Pending: len(w.jobs),
		Failed:  w.failed,
		Dropped: w.dropped,
	}
}

package workers

import (
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const DefaultFeedSize = 50

// EventFeed logs every event and keeps the most recent ones in memory.
type EventFeed struct {
	logger *zap.Logger

	mu     sync.RWMutex
	events []domain.Event
	size   int
}

func NewEventFeed(logger *zap.Logger, size int) *EventFeed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventFeed{
		logger: logger,
		size:   size,
	}
}

func (f *EventFeed) Notify(ev domain.Event) {
	f.logger.Info("event",
		zap.String("type", string(ev.Type)),
		zap.String("user_id", ev.UserID),
		zap.String("habit_id", ev.HabitID),
		zap.String("name", ev.Name),
	)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	if len(f.events) > f.size {
		f.events = f.events[len(f.events)-f.size:]
	}
}

// Recent returns up to limit events of a user, newest first.
func (f *EventFeed) Recent(userID string, limit int) []domain.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := []domain.Event{}
	for i := len(f.events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out
}

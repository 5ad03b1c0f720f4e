package domain

import (
	"context"
)

// HabitLogRepository is the persistence port used by the reconciler and the
// aggregators. Implementations back it with Postgres, a local blob or memory.
type HabitLogRepository interface {
	// Get returns the records of one user for one day, in insertion order.
	Get(ctx context.Context, userID string, day DayKey) ([]HabitRecord, error)

	// Upsert creates or replaces the record keyed by (user, habit, day).
	// Last write wins.
	Upsert(ctx context.Context, record HabitRecord) error

	// ListRange returns all records of a user between from and to inclusive,
	// ordered by day and then insertion order.
	ListRange(ctx context.Context, userID string, from, to DayKey) ([]HabitRecord, error)
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

var (
	_ domain.HabitLogRepository = (*InMemoryHabitLogRepository)(nil)
	_ domain.GoalRepository     = (*InMemoryGoalRepository)(nil)
)

type logKey struct {
	userID  string
	habitID string
	date    domain.DayKey
}

type InMemoryHabitLogRepository struct {
	store map[logKey]domain.HabitRecord
	seq   map[logKey]int
	next  int

	mu sync.RWMutex
}

func NewInMemoryHabitLogRepository() *InMemoryHabitLogRepository {
	return &InMemoryHabitLogRepository{
		store: make(map[logKey]domain.HabitRecord),
		seq:   make(map[logKey]int),
	}
}

func (r *InMemoryHabitLogRepository) Upsert(ctx context.Context, record domain.HabitRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey{userID: record.UserID, habitID: record.HabitID, date: record.Date}
	if _, ok := r.seq[key]; !ok {
		r.next++
		r.seq[key] = r.next
	}
	r.store[key] = record
	return nil
}

func (r *InMemoryHabitLogRepository) Get(ctx context.Context, userID string, day domain.DayKey) ([]domain.HabitRecord, error) {
	return r.ListRange(ctx, userID, day, day)
}

func (r *InMemoryHabitLogRepository) ListRange(ctx context.Context, userID string, from, to domain.DayKey) ([]domain.HabitRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []logKey
	for k := range r.store {
		if k.userID == userID && !k.date.Before(from) && !to.Before(k.date) {
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return r.seq[keys[i]] < r.seq[keys[j]]
	})

	records := make([]domain.HabitRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, r.store[k])
	}
	return records, nil
}

type goalKey struct {
	userID string
	id     string
}

type InMemoryGoalRepository struct {
	goals    map[goalKey]*domain.Goal
	order    []goalKey
	missions map[string]domain.MissionSettings

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		goals:    make(map[goalKey]*domain.Goal),
		missions: make(map[string]domain.MissionSettings),
	}
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := []*domain.Goal{}
	for _, k := range r.order {
		if k.userID == userID {
			clone := *r.goals[k]
			goals = append(goals, &clone)
		}
	}
	return goals, nil
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := goalKey{userID: goal.UserID, id: goal.ID}
	if _, ok := r.goals[k]; ok {
		return domain.ErrGoalAlreadyExists
	}
	clone := *goal
	r.goals[k] = &clone
	r.order = append(r.order, k)
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[goalKey{userID: userID, id: id}]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *goal
	return &clone, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := goalKey{userID: goal.UserID, id: goal.ID}
	if _, ok := r.goals[k]; !ok {
		return domain.ErrGoalNotFound
	}
	clone := *goal
	r.goals[k] = &clone
	return nil
}

func (r *InMemoryGoalRepository) GetMission(ctx context.Context, userID string) (domain.MissionSettings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings, ok := r.missions[userID]
	return settings, ok, nil
}

func (r *InMemoryGoalRepository) SaveMission(ctx context.Context, userID string, settings domain.MissionSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.missions[userID] = settings
	return nil
}

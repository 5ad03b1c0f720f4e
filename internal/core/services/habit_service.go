package services

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

// RecordWriter accepts upserts without blocking the caller. HabitService
// calls it with its lock held.
type RecordWriter interface {
	Enqueue(record domain.HabitRecord)
}

type Notifier interface {
	Notify(event domain.Event)
}

type dayState struct {
	day    domain.DayKey
	habits []domain.Habit
}

// HabitService owns the effective habit list of the current day for every
// user. Mutations update that list first and hand the upsert to the writer
// before releasing the lock, so writes reach the queue in mutation order. A
// failed write never rolls the list back.
type HabitService struct {
	repo     domain.HabitLogRepository
	writer   RecordWriter
	notifier Notifier
	clock    Clock
	defaults []domain.HabitDefinition

	mu    sync.Mutex
	state map[string]*dayState
}

func NewHabitService(repo domain.HabitLogRepository, writer RecordWriter, notifier Notifier, clock Clock) *HabitService {
	return &HabitService{
		repo:     repo,
		writer:   writer,
		notifier: notifier,
		clock:    clock,
		defaults: domain.DefaultHabits(),
		state:    make(map[string]*dayState),
	}
}

func (s *HabitService) Defaults() []domain.HabitDefinition {
	out := make([]domain.HabitDefinition, len(s.defaults))
	copy(out, s.defaults)
	return out
}

func (s *HabitService) Clock() Clock {
	return s.clock
}

// load must be called with s.mu held.
func (s *HabitService) load(ctx context.Context, userID string) (*dayState, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	day := today(s.clock)
	if st, ok := s.state[userID]; ok && st.day == day {
		return st, nil
	}

	records, err := s.repo.Get(ctx, userID, day)
	if err != nil {
		return nil, domain.NewPersistenceError("get", err)
	}

	st := &dayState{day: day, habits: Reconcile(s.defaults, records)}
	s.state[userID] = st
	return st, nil
}

func copyHabits(habits []domain.Habit) []domain.Habit {
	out := make([]domain.Habit, len(habits))
	copy(out, habits)
	return out
}

func (s *HabitService) Today(ctx context.Context, userID string) (domain.DayKey, []domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return st.day, copyHabits(st.habits), nil
}

func (s *HabitService) TodayStats(ctx context.Context, userID string) (*domain.TodayStats, error) {
	day, habits, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.TodayStats{
		Date:   day,
		Habits: habits,
		Stats:  CompletionStatsFor(habits),
	}, nil
}

func (s *HabitService) AddCustomHabit(ctx context.Context, userID, name string) (*domain.Habit, error) {
	cleanName, err := domain.ValidateHabitName(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	st, err := s.load(ctx, userID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	habit := domain.Habit{
		ID:          domain.NewCustomHabitID(),
		Name:        cleanName,
		Icon:        domain.CustomHabitIcon,
		TracksTopic: true,
		Custom:      true,
	}
	st.habits = append(st.habits, habit)
	s.writer.Enqueue(habit.Record(userID, st.day))
	s.mu.Unlock()

	s.notify(domain.NewEvent(domain.EventHabitAdded, userID, habit.ID, habit.Name))

	return &habit, nil
}

func (s *HabitService) ToggleHabit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	habit, err := s.mutate(ctx, userID, habitID, func(h *domain.Habit) {
		h.Completed = !h.Completed
	})
	if err != nil {
		return nil, err
	}

	if habit.Completed {
		s.notify(domain.NewEvent(domain.EventHabitCompleted, userID, habit.ID, habit.Name))
	}

	return habit, nil
}

func (s *HabitService) SetTopic(ctx context.Context, userID, habitID, topic string) (*domain.Habit, error) {
	cleanTopic, err := domain.ValidateTopic(topic)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, habitID, func(h *domain.Habit) {
		h.Topic = cleanTopic
	})
}

// mutate applies fn to one habit of today and enqueues the resulting record
// while s.mu is held. Enqueue never blocks.
func (s *HabitService) mutate(ctx context.Context, userID, habitID string, fn func(h *domain.Habit)) (*domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range st.habits {
		if st.habits[i].ID == habitID {
			fn(&st.habits[i])
			h := st.habits[i]
			s.writer.Enqueue(h.Record(userID, st.day))
			return &h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

// Touched returns the records of today that differ from a blank default, so
// aggregators can overlay state that may not be persisted yet.
func (s *HabitService) Touched(ctx context.Context, userID string) (domain.DayKey, []domain.HabitRecord, error) {
	day, habits, err := s.Today(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	var records []domain.HabitRecord
	for _, h := range habits {
		if h.Custom || h.Completed || h.Topic != "" {
			records = append(records, h.Record(userID, day))
		}
	}
	return day, records, nil
}

func (s *HabitService) notify(ev domain.Event) {
	if s.notifier != nil {
		s.notifier.Notify(ev)
	}
}

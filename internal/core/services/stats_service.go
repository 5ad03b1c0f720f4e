package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const (
	WeeklyWindowDays  = 7
	HeatmapWindowDays = 120
	MaxWindowDays     = 366
)

// TodaySource exposes the optimistic state of the current day.
type TodaySource interface {
	Touched(ctx context.Context, userID string) (domain.DayKey, []domain.HabitRecord, error)
}

type StatsService struct {
	repo     domain.HabitLogRepository
	live     TodaySource
	clock    Clock
	defaults []domain.HabitDefinition
}

func NewStatsService(repo domain.HabitLogRepository, live TodaySource, clock Clock) *StatsService {
	return &StatsService{
		repo:     repo,
		live:     live,
		clock:    clock,
		defaults: domain.DefaultHabits(),
	}
}

func (s *StatsService) Today() domain.DayKey {
	return today(s.clock)
}

func (s *StatsService) recordsByDay(ctx context.Context, userID string, from, to domain.DayKey) (map[domain.DayKey][]domain.HabitRecord, error) {
	records, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, domain.NewPersistenceError("list", err)
	}
	byDay := GroupByDay(records)

	if s.live == nil {
		return byDay, nil
	}
	day, touched, err := s.live.Touched(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !day.Before(from) && !to.Before(day) {
		byDay[day] = touched
	}
	return byDay, nil
}

func (s *StatsService) Window(ctx context.Context, userID string, days int) ([]*domain.DayBucket, error) {
	if days <= 0 || days > MaxWindowDays {
		return nil, &domain.ValidationError{Field: "days", Reason: "must be between 1 and 366"}
	}
	end := s.Today()
	start := end.AddDays(-(days - 1))

	byDay, err := s.recordsByDay(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return TrailingWindow(end, days, s.defaults, byDay), nil
}

func (s *StatsService) Weekly(ctx context.Context, userID string) (*domain.WeeklyProgress, error) {
	buckets, err := s.Window(ctx, userID, WeeklyWindowDays)
	if err != nil {
		return nil, err
	}
	wp := Weekly(buckets)
	return &wp, nil
}

func (s *StatsService) Heatmap(ctx context.Context, userID string, days int) (*domain.HeatmapSummary, error) {
	buckets, err := s.Window(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	summary := &domain.HeatmapSummary{
		Days:          buckets,
		TotalDays:     len(buckets),
		ActiveDays:    CountActive(buckets),
		CurrentStreak: CurrentStreak(buckets, s.Today()),
		LongestStreak: LongestStreak(buckets),
	}
	if len(buckets) > 0 {
		summary.StartDate = buckets[0].Date
		summary.EndDate = buckets[len(buckets)-1].Date
	}
	return summary, nil
}

func (s *StatsService) Calendar(ctx context.Context, userID string, year int, month time.Month) (*domain.CalendarMonth, error) {
	if month < time.January || month > time.December {
		return nil, &domain.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if year < 1970 || year > 9999 {
		return nil, &domain.ValidationError{Field: "year", Reason: "is out of range"}
	}

	first, last := MonthBounds(year, month)
	byDay, err := s.recordsByDay(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	blanks, buckets := CalendarMonthBuckets(year, month, s.defaults, byDay)
	return &domain.CalendarMonth{
		Year:          year,
		Month:         int(month),
		LeadingBlanks: blanks,
		Days:          buckets,
		ActiveDays:    CountActive(buckets),
		CurrentStreak: CurrentStreak(buckets, s.Today()),
	}, nil
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

type MockHabitLogRepo struct {
	mock.Mock
}

func (m *MockHabitLogRepo) Get(ctx context.Context, userID string, day domain.DayKey) ([]domain.HabitRecord, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HabitRecord), args.Error(1)
}

func (m *MockHabitLogRepo) Upsert(ctx context.Context, record domain.HabitRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHabitLogRepo) ListRange(ctx context.Context, userID string, from, to domain.DayKey) ([]domain.HabitRecord, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HabitRecord), args.Error(1)
}

func TestStatsService_Weekly(t *testing.T) {
	ctx := context.Background()
	userID := "user-stats-1"

	t.Run("Success: Asks the store for the trailing seven days", func(t *testing.T) {
		repo := new(MockHabitLogRepo)
		svc := services.NewStatsService(repo, nil, newClock("2025-03-10"))

		records := []domain.HabitRecord{
			{UserID: userID, HabitID: "java", Date: "2025-03-04", Completed: true},
			{UserID: userID, HabitID: "dsa", Date: "2025-03-10", Completed: true},
			{UserID: userID, HabitID: "fitness", Date: "2025-03-10", Completed: true},
		}
		repo.On("ListRange", ctx, userID, domain.DayKey("2025-03-04"), domain.DayKey("2025-03-10")).Return(records, nil)

		wp, err := svc.Weekly(ctx, userID)

		require.NoError(t, err)
		assert.Len(t, wp.Days, 7)
		assert.Equal(t, 3, wp.TotalCompleted)
		assert.Equal(t, 35, wp.TotalPossible)
		assert.Equal(t, 2, wp.ActiveDays)
		repo.AssertExpectations(t)
	})

	t.Run("Error: Store failure is wrapped", func(t *testing.T) {
		repo := new(MockHabitLogRepo)
		svc := services.NewStatsService(repo, nil, newClock("2025-03-10"))

		repo.On("ListRange", ctx, userID, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		wp, err := svc.Weekly(ctx, userID)

		assert.Nil(t, wp)
		var pErr *domain.PersistenceError
		require.True(t, errors.As(err, &pErr))
		assert.Equal(t, "list", pErr.Op)
	})
}

func TestStatsService_Heatmap(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	t.Run("Success: Streaks and totals over the window", func(t *testing.T) {
		repo := NewMockRepo(
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-06", Completed: true},
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-07", Completed: true},
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-08", Completed: true},
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-10", Completed: true},
			domain.HabitRecord{UserID: "someone-else", HabitID: "java", Date: "2025-03-09", Completed: true},
		)
		svc := services.NewStatsService(repo, nil, newClock("2025-03-10"))

		summary, err := svc.Heatmap(ctx, userID, services.HeatmapWindowDays)

		require.NoError(t, err)
		assert.Equal(t, 120, summary.TotalDays)
		assert.Len(t, summary.Days, 120)
		assert.Equal(t, domain.DayKey("2025-03-10"), summary.EndDate)
		assert.Equal(t, domain.DayKey("2024-11-11"), summary.StartDate)
		assert.Equal(t, 4, summary.ActiveDays)
		assert.Equal(t, 1, summary.CurrentStreak)
		assert.Equal(t, 3, summary.LongestStreak)
	})

	t.Run("Fail: Window out of range", func(t *testing.T) {
		svc := services.NewStatsService(NewMockRepo(), nil, newClock("2025-03-10"))

		for _, days := range []int{0, -3, services.MaxWindowDays + 1} {
			_, err := svc.Heatmap(ctx, userID, days)
			assert.True(t, domain.IsValidationError(err), "days=%d", days)
		}
	})
}

func TestStatsService_OverlaysTodayState(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	repo := NewMockRepo(
		domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-09", Completed: true},
	)
	clock := newClock("2025-03-10")
	habits := services.NewHabitService(repo, &recordingWriter{}, nil, clock)
	svc := services.NewStatsService(repo, habits, clock)

	_, err := habits.ToggleHabit(ctx, userID, "dsa")
	require.NoError(t, err)

	summary, err := svc.Heatmap(ctx, userID, 7)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.CurrentStreak, "queued write is visible before it lands")
	assert.Equal(t, 1, summary.Days[6].CompletedCount)
}

func TestStatsService_Calendar(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	t.Run("Success: Builds the month grid", func(t *testing.T) {
		repo := NewMockRepo(
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-10-01", Completed: true},
			domain.HabitRecord{UserID: userID, HabitID: "dsa", Date: "2025-10-01", Completed: true},
			domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-11-01", Completed: true},
		)
		svc := services.NewStatsService(repo, nil, newClock("2025-10-02"))

		cal, err := svc.Calendar(ctx, userID, 2025, time.October)

		require.NoError(t, err)
		assert.Equal(t, 3, cal.LeadingBlanks)
		assert.Len(t, cal.Days, 34)
		assert.Equal(t, 1, cal.ActiveDays)
		assert.Equal(t, 2, cal.Days[3].CompletedCount)
		assert.Equal(t, 2, cal.Days[3].Intensity)
		assert.Equal(t, 0, cal.CurrentStreak)
	})

	t.Run("Fail: Invalid month", func(t *testing.T) {
		svc := services.NewStatsService(NewMockRepo(), nil, newClock("2025-10-02"))

		_, err := svc.Calendar(ctx, userID, 2025, time.Month(13))

		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("Fail: Invalid year", func(t *testing.T) {
		svc := services.NewStatsService(NewMockRepo(), nil, newClock("2025-10-02"))

		_, err := svc.Calendar(ctx, userID, 12, time.May)

		assert.True(t, domain.IsValidationError(err))
	})
}

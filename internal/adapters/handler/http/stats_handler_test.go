package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

func seedCompleted(t *testing.T, env *testEnv, days ...domain.DayKey) {
	t.Helper()
	for _, d := range days {
		require.NoError(t, env.logs.Upsert(context.Background(), domain.HabitRecord{
			UserID: testUser, HabitID: "fitness", Date: d, Completed: true,
		}))
	}
}

func TestStatsToday(t *testing.T) {
	env := setupRouter(t, "2025-03-10")
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/habits/java/toggle", "").Code)

	w := env.do(http.MethodGet, "/api/v1/stats/today", "")

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.TodayStats](t, w)
	assert.Equal(t, 1, stats.Stats.CompletedCount)
	assert.Equal(t, 5, stats.Stats.Total)
	assert.Equal(t, 20, stats.Stats.Percentage)
}

func TestStatsWeekly(t *testing.T) {
	env := setupRouter(t, "2025-03-10")
	seedCompleted(t, env, "2025-03-04", "2025-03-09", "2025-03-10", "2025-03-01")

	w := env.do(http.MethodGet, "/api/v1/stats/weekly", "")

	require.Equal(t, http.StatusOK, w.Code)
	weekly := decode[domain.WeeklyProgress](t, w)
	assert.Equal(t, domain.DayKey("2025-03-04"), weekly.StartDate)
	assert.Equal(t, domain.DayKey("2025-03-10"), weekly.EndDate)
	assert.Len(t, weekly.Days, 7)
	assert.Equal(t, 3, weekly.TotalCompleted)
	assert.Equal(t, 3, weekly.ActiveDays)
}

func TestStatsHeatmap(t *testing.T) {
	t.Run("Success: Streaks over a custom window", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")
		seedCompleted(t, env, "2025-03-08", "2025-03-09", "2025-03-10", "2025-03-05")

		w := env.do(http.MethodGet, "/api/v1/stats/heatmap?days=10", "")

		require.Equal(t, http.StatusOK, w.Code)
		summary := decode[domain.HeatmapSummary](t, w)
		assert.Equal(t, 10, summary.TotalDays)
		assert.Equal(t, 4, summary.ActiveDays)
		assert.Equal(t, 3, summary.CurrentStreak)
		assert.Equal(t, 3, summary.LongestStreak)
	})

	t.Run("Fail: 400 Non-numeric days", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodGet, "/api/v1/stats/heatmap?days=abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Window too large", func(t *testing.T) {
		env := setupRouter(t, "2025-03-10")

		w := env.do(http.MethodGet, "/api/v1/stats/heatmap?days=5000", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type calendarResponse struct {
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	LeadingBlanks int                 `json:"leading_blanks"`
	Days          []*domain.DayBucket `json:"days"`
}

func TestStatsCalendar(t *testing.T) {
	t.Run("Success: Month starting on Wednesday", func(t *testing.T) {
		env := setupRouter(t, "2025-10-15")

		w := env.do(http.MethodGet, "/api/v1/stats/calendar?year=2025&month=10", "")

		require.Equal(t, http.StatusOK, w.Code)
		cal := decode[calendarResponse](t, w)
		assert.Equal(t, 3, cal.LeadingBlanks)
		require.Len(t, cal.Days, 3+31)
		assert.Nil(t, cal.Days[0])
		assert.Nil(t, cal.Days[2])
		require.NotNil(t, cal.Days[3])
		assert.Equal(t, domain.DayKey("2025-10-01"), cal.Days[3].Date)
	})

	t.Run("Success: Defaults to current month", func(t *testing.T) {
		env := setupRouter(t, "2024-02-10")

		w := env.do(http.MethodGet, "/api/v1/stats/calendar", "")

		require.Equal(t, http.StatusOK, w.Code)
		cal := decode[calendarResponse](t, w)
		assert.Equal(t, 2024, cal.Year)
		assert.Equal(t, 2, cal.Month)
	})

	t.Run("Fail: 400 Invalid month", func(t *testing.T) {
		env := setupRouter(t, "2025-10-15")

		w := env.do(http.MethodGet, "/api/v1/stats/calendar?year=2025&month=13", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

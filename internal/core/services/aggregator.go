package services

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

func CompletionStatsFor(habits []domain.Habit) domain.CompletionStats {
	completed := 0
	for _, h := range habits {
		if h.Completed {
			completed++
		}
	}
	return domain.CompletionStats{
		CompletedCount: completed,
		Total:          len(habits),
		Percentage:     roundPercent(completed, len(habits)),
	}
}

// Intensity maps a day's completed count to a heatmap level in [0,4].
func Intensity(completed int) int {
	switch {
	case completed <= 0:
		return 0
	case completed == 1:
		return 1
	case completed == 2:
		return 2
	case completed <= 4:
		return 3
	default:
		return 4
	}
}

func GroupByDay(records []domain.HabitRecord) map[domain.DayKey][]domain.HabitRecord {
	byDay := make(map[domain.DayKey][]domain.HabitRecord)
	for _, r := range records {
		byDay[r.Date] = append(byDay[r.Date], r)
	}
	return byDay
}

func BuildBucket(day domain.DayKey, defaults []domain.HabitDefinition, records []domain.HabitRecord) *domain.DayBucket {
	stats := CompletionStatsFor(Reconcile(defaults, records))
	return &domain.DayBucket{
		Date:           day,
		Records:        records,
		CompletedCount: stats.CompletedCount,
		Total:          stats.Total,
		Intensity:      Intensity(stats.CompletedCount),
	}
}

// TrailingWindow returns n contiguous buckets ending at today, oldest first.
func TrailingWindow(today domain.DayKey, n int, defaults []domain.HabitDefinition, byDay map[domain.DayKey][]domain.HabitRecord) []*domain.DayBucket {
	if n <= 0 {
		return []*domain.DayBucket{}
	}
	buckets := make([]*domain.DayBucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		buckets = append(buckets, BuildBucket(day, defaults, byDay[day]))
	}
	return buckets
}

// MonthBounds returns the first and last day of a calendar month.
func MonthBounds(year int, month time.Month) (domain.DayKey, domain.DayKey) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return domain.DayKey(first.Format(domain.DayKeyLayout)), domain.DayKey(last.Format(domain.DayKeyLayout))
}

// CalendarMonthBuckets lays out a month Sunday-first. The returned slice starts
// with nil placeholders so that day 1 lands in its weekday column.
func CalendarMonthBuckets(year int, month time.Month, defaults []domain.HabitDefinition, byDay map[domain.DayKey][]domain.HabitRecord) (int, []*domain.DayBucket) {
	first, last := MonthBounds(year, month)
	blanks := int(first.Weekday())
	days := first.DaysUntil(last) + 1

	buckets := make([]*domain.DayBucket, blanks, blanks+days)
	for i := 0; i < days; i++ {
		day := first.AddDays(i)
		buckets = append(buckets, BuildBucket(day, defaults, byDay[day]))
	}
	return blanks, buckets
}

func CountActive(buckets []*domain.DayBucket) int {
	active := 0
	for _, b := range buckets {
		if b.Active() {
			active++
		}
	}
	return active
}

func Weekly(buckets []*domain.DayBucket) domain.WeeklyProgress {
	wp := domain.WeeklyProgress{Days: buckets}
	if len(buckets) > 0 {
		wp.StartDate = buckets[0].Date
		wp.EndDate = buckets[len(buckets)-1].Date
	}
	for _, b := range buckets {
		if b == nil {
			continue
		}
		wp.TotalCompleted += b.CompletedCount
		wp.TotalPossible += b.Total
		if b.Active() {
			wp.ActiveDays++
		}
	}
	wp.Remaining = wp.TotalPossible - wp.TotalCompleted
	wp.Percentage = roundPercent(wp.TotalCompleted, wp.TotalPossible)
	return wp
}

// DaysRemaining counts whole days left in the mission window, never negative.
func DaysRemaining(m domain.MissionSettings, today domain.DayKey) int {
	left := today.DaysUntil(m.EndDate())
	if left < 0 {
		return 0
	}
	return left
}

func OverallProgress(goals []*domain.Goal) int {
	if len(goals) == 0 {
		return 0
	}
	sum := 0
	for _, g := range goals {
		sum += g.Progress
	}
	return int(math.Round(float64(sum) / float64(len(goals))))
}

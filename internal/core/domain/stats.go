package domain

type CompletionStats struct {
	CompletedCount int `json:"completed_count"`
	Total          int `json:"total"`
	Percentage     int `json:"percentage"`
}

// DayBucket holds the records and derived stats of one day. It is computed on
// read and never persisted.
type DayBucket struct {
	Date           DayKey        `json:"date"`
	Records        []HabitRecord `json:"records,omitempty"`
	CompletedCount int           `json:"completed_count"`
	Total          int           `json:"total"`
	Intensity      int           `json:"intensity"`
}

func (b *DayBucket) Active() bool {
	return b != nil && b.CompletedCount > 0
}

type WeeklyProgress struct {
	StartDate      DayKey       `json:"start_date"`
	EndDate        DayKey       `json:"end_date"`
	Days           []*DayBucket `json:"days"`
	TotalCompleted int          `json:"total_completed"`
	TotalPossible  int          `json:"total_possible"`
	Remaining      int          `json:"remaining"`
	ActiveDays     int          `json:"active_days"`
	Percentage     int          `json:"percentage"`
}

type HeatmapSummary struct {
	StartDate     DayKey       `json:"start_date"`
	EndDate       DayKey       `json:"end_date"`
	Days          []*DayBucket `json:"days"`
	TotalDays     int          `json:"total_days"`
	ActiveDays    int          `json:"active_days"`
	CurrentStreak int          `json:"current_streak"`
	LongestStreak int          `json:"longest_streak"`
}

type CalendarMonth struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	LeadingBlanks int          `json:"leading_blanks"`
	Days          []*DayBucket `json:"days"`
	ActiveDays    int          `json:"active_days"`
	CurrentStreak int          `json:"current_streak"`
}

type TodayStats struct {
	Date   DayKey          `json:"date"`
	Habits []Habit         `json:"habits"`
	Stats  CompletionStats `json:"stats"`
}

package services

import (
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

// CurrentStreak counts consecutive active days ending at today. Returns 0 when
// today is not part of the window. Placeholders end the scan.
func CurrentStreak(buckets []*domain.DayBucket, today domain.DayKey) int {
	idx := -1
	for i, b := range buckets {
		if b != nil && b.Date == today {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}

	streak := 0
	for i := idx; i >= 0; i-- {
		if !buckets[i].Active() {
			break
		}
		streak++
	}
	return streak
}

func LongestStreak(buckets []*domain.DayBucket) int {
	longest, run := 0, 0
	for _, b := range buckets {
		if b.Active() {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

package services

import (
	"context"
	"sort"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const DefaultLearningLookbackDays = 365

type LearningService struct {
	repo     domain.HabitLogRepository
	live     TodaySource
	clock    Clock
	lookback int
}

func NewLearningService(repo domain.HabitLogRepository, live TodaySource, clock Clock, lookbackDays int) *LearningService {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLearningLookbackDays
	}
	return &LearningService{
		repo:     repo,
		live:     live,
		clock:    clock,
		lookback: lookbackDays,
	}
}

func (s *LearningService) Log(ctx context.Context, userID, domainFilter string) (*domain.LearningLog, error) {
	end := today(s.clock)
	start := end.AddDays(-(s.lookback - 1))

	records, err := s.repo.ListRange(ctx, userID, start, end)
	if err != nil {
		return nil, domain.NewPersistenceError("list", err)
	}

	if s.live != nil {
		day, touched, err := s.live.Touched(ctx, userID)
		if err != nil {
			return nil, err
		}
		kept := make([]domain.HabitRecord, 0, len(records)+len(touched))
		for _, r := range records {
			if r.Date != day {
				kept = append(kept, r)
			}
		}
		records = append(kept, touched...)
	}

	return BuildLearningLog(records, domainFilter), nil
}

// BuildLearningLog keeps completed records that carry a topic, newest day
// first, and groups them by day.
func BuildLearningLog(records []domain.HabitRecord, domainFilter string) *domain.LearningLog {
	if domainFilter == "" {
		domainFilter = domain.LearningDomainAll
	}

	var entries []domain.LearningEntry
	counts := make(map[string]int)
	for _, r := range records {
		if !r.Completed || r.Topic == "" {
			continue
		}
		e := domain.LearningEntry{
			ID:      string(r.Date) + "-" + r.HabitID,
			Date:    r.Date,
			HabitID: r.HabitID,
			Topic:   r.Topic,
			Domain:  domain.DomainForHabit(r.HabitID),
		}
		counts[e.Domain]++
		if domainFilter != domain.LearningDomainAll && e.Domain != domainFilter {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	log := &domain.LearningLog{
		Domain:       domainFilter,
		Total:        len(entries),
		DomainCounts: counts,
		Days:         []domain.LearningDay{},
	}
	for _, e := range entries {
		n := len(log.Days)
		if n == 0 || log.Days[n-1].Date != e.Date {
			log.Days = append(log.Days, domain.LearningDay{Date: e.Date})
			n++
		}
		log.Days[n-1].Entries = append(log.Days[n-1].Entries, e)
	}
	return log
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/services"
)

func TestBuildLearningLog(t *testing.T) {
	records := []domain.HabitRecord{
		{HabitID: "java", Date: "2025-03-08", Completed: true, Topic: "records"},
		{HabitID: "dsa", Date: "2025-03-10", Completed: true, Topic: "two pointers"},
		{HabitID: "salesforce", Date: "2025-03-10", Completed: false, Topic: "flows"},
		{HabitID: "webdev", Date: "2025-03-09", Completed: true},
		{HabitID: "custom-1", Date: "2025-03-09", Completed: true, Topic: "stoicism"},
		{HabitID: "java", Date: "2025-03-10", Completed: true, Topic: "virtual threads"},
	}

	t.Run("Success: All domains newest first", func(t *testing.T) {
		log := services.BuildLearningLog(records, "")

		assert.Equal(t, domain.LearningDomainAll, log.Domain)
		assert.Equal(t, 4, log.Total)
		require.Len(t, log.Days, 3)
		assert.Equal(t, domain.DayKey("2025-03-10"), log.Days[0].Date)
		require.Len(t, log.Days[0].Entries, 2)
		assert.Equal(t, "DSA", log.Days[0].Entries[0].Domain)
		assert.Equal(t, "2025-03-10-dsa", log.Days[0].Entries[0].ID)
		assert.Equal(t, domain.LearningDomainOther, log.Days[1].Entries[0].Domain)
		assert.Equal(t, map[string]int{"Java": 2, "DSA": 1, "Other": 1}, log.DomainCounts)
	})

	t.Run("Success: Domain filter keeps the counts", func(t *testing.T) {
		log := services.BuildLearningLog(records, "Java")

		assert.Equal(t, 2, log.Total)
		require.Len(t, log.Days, 2)
		assert.Equal(t, "virtual threads", log.Days[0].Entries[0].Topic)
		assert.Equal(t, 1, log.DomainCounts["DSA"])
	})

	t.Run("Success: No entries", func(t *testing.T) {
		log := services.BuildLearningLog(nil, "")

		assert.Equal(t, 0, log.Total)
		assert.NotNil(t, log.Days)
	})
}

func TestLearningService_Log(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	repo := NewMockRepo(
		domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-09", Completed: true, Topic: "sealed classes"},
		domain.HabitRecord{UserID: userID, HabitID: "dsa", Date: "2025-03-10", Completed: true, Topic: "stale"},
	)
	clock := newClock("2025-03-10")
	habits := services.NewHabitService(repo, &recordingWriter{}, nil, clock)
	svc := services.NewLearningService(repo, habits, clock, 0)

	_, err := habits.SetTopic(ctx, userID, "dsa", "heaps")
	require.NoError(t, err)

	log, err := svc.Log(ctx, userID, "")

	require.NoError(t, err)
	require.Equal(t, 2, log.Total)
	assert.Equal(t, "heaps", log.Days[0].Entries[0].Topic)
	assert.Equal(t, "sealed classes", log.Days[1].Entries[0].Topic)

	stored, _ := repo.Get(ctx, userID, "2025-03-10")
	assert.Equal(t, "stale", stored[0].Topic)
}

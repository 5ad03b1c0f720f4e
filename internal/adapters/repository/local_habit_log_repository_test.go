package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

func TestLocalHabitLogRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewLocalHabitLogRepository(dir)

	empty, err := repo.Get(ctx, "local", "2025-03-10")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "java", Date: "2025-03-10", Name: "Java Practice", Completed: true, Topic: "streams"}))
	require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "custom-1", Date: "2025-03-10", Name: "Read"}))
	require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "java", Date: "2025-03-10", Name: "Java Practice", Completed: false, Topic: "streams"}))
	require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "dsa", Date: "2025-03-09", Completed: true}))

	records, err := NewLocalHabitLogRepository(dir).Get(ctx, "local", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "java", records[0].HabitID)
	assert.False(t, records[0].Completed)
	assert.Equal(t, "streams", records[0].Topic)
	assert.Equal(t, "custom-1", records[1].HabitID)
	assert.Equal(t, domain.DayKey("2025-03-10"), records[1].Date)

	all, err := repo.ListRange(ctx, "local", "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "dsa", all[0].HabitID)

	raw, err := os.ReadFile(filepath.Join(dir, LocalBlobKey))
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc, 2)
	assert.Equal(t, domain.CustomHabitIcon, doc["2025-03-10"][1]["icon"])
	assert.Equal(t, "☕", doc["2025-03-10"][0]["icon"])
}

func TestLocalHabitLogRepository_CoercesMalformedEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	blob := `{
		"2025-03-10": [
			{"id": "java", "completed": "yes", "topic": "lambdas"},
			{"name": "no id"},
			null,
			{"id": "custom-9", "name": "Walk", "completed": true}
		],
		"not-a-day": [{"id": "dsa", "completed": true}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalBlobKey), []byte(blob), 0o600))

	repo := NewLocalHabitLogRepository(dir)

	records, err := repo.Get(ctx, "local", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].Completed)
	assert.Equal(t, "lambdas", records[0].Topic)
	assert.True(t, records[1].Completed)

	all, err := repo.ListRange(ctx, "local", "0000-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLocalHabitLogRepository_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalBlobKey), []byte("{not json"), 0o600))

	repo := NewLocalHabitLogRepository(dir)

	_, err := repo.Get(ctx, "local", "2025-03-10")
	assert.Error(t, err)

	err = repo.Upsert(ctx, domain.HabitRecord{HabitID: "java", Date: "2025-03-10"})
	assert.Error(t, err, "a corrupt document is never overwritten")

	raw, _ := os.ReadFile(filepath.Join(dir, LocalBlobKey))
	assert.Equal(t, "{not json", string(raw))
}

func TestLocalHabitLogRepository_UpsertKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	blob := `{
		"Sat Oct 18 2025": [{"id": "java", "completed": true, "topic": "records"}],
		"2025-03-09": [{"id": "dsa", "completed": true}],
		"2025-03-10": [
			{"name": "no id"},
			{"id": "fitness", "completed": false},
			7
		]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalBlobKey), []byte(blob), 0o600))

	repo := NewLocalHabitLogRepository(dir)

	t.Run("Success: Unrelated day keeps legacy key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "dsa", Date: "2025-03-09", Completed: false}))

		raw, err := os.ReadFile(filepath.Join(dir, LocalBlobKey))
		require.NoError(t, err)

		var doc map[string][]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		require.Contains(t, doc, "Sat Oct 18 2025")
		legacy := doc["Sat Oct 18 2025"][0].(map[string]any)
		assert.Equal(t, "records", legacy["topic"])
		assert.Len(t, doc["2025-03-10"], 3)
	})

	t.Run("Success: Same day replaces by id and keeps unreadable entries", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "fitness", Date: "2025-03-10", Name: "Fitness", Completed: true}))

		raw, err := os.ReadFile(filepath.Join(dir, LocalBlobKey))
		require.NoError(t, err)

		var doc map[string][]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		day := doc["2025-03-10"]
		require.Len(t, day, 3)
		assert.Equal(t, map[string]any{"name": "no id"}, day[0])
		assert.Equal(t, true, day[1].(map[string]any)["completed"])
		assert.Equal(t, float64(7), day[2])
		assert.Contains(t, doc, "Sat Oct 18 2025")

		records, err := repo.Get(ctx, "local", "2025-03-10")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Completed)
	})

	t.Run("Fail: Day that is not a list is left alone", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, LocalBlobKey), []byte(`{"2025-03-11": "oops"}`), 0o600))
		fresh := NewLocalHabitLogRepository(dir)

		err := fresh.Upsert(ctx, domain.HabitRecord{UserID: "local", HabitID: "java", Date: "2025-03-11", Completed: true})
		assert.Error(t, err)

		raw, _ := os.ReadFile(filepath.Join(dir, LocalBlobKey))
		assert.JSONEq(t, `{"2025-03-11": "oops"}`, string(raw))
	})
}

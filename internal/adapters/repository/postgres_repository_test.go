package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T, driver string) *sqlx.DB {
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := Connect(context.Background(), driver, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE habit_logs, goals, mission_settings")
	require.NoError(t, err, "Failed to clean up database")
}

func TestPostgresHabitLogRepository_Integration(t *testing.T) {
	for _, driver := range []string{DriverPgx, DriverPq} {
		t.Run(driver, func(t *testing.T) {
			db := setupTestDB(t, driver)
			defer db.Close()

			cleanup(t, db)
			defer cleanup(t, db)

			repo := NewPostgresHabitLogRepository(db)
			ctx := context.Background()
			userID := "pg-user-1"

			t.Run("Upsert creates then replaces", func(t *testing.T) {
				rec := domain.HabitRecord{UserID: userID, HabitID: "java", Date: "2025-03-10", Name: "Java Practice", Completed: true}
				require.NoError(t, repo.Upsert(ctx, rec))

				rec.Completed = false
				rec.Topic = "records"
				require.NoError(t, repo.Upsert(ctx, rec))

				records, err := repo.Get(ctx, userID, "2025-03-10")
				require.NoError(t, err)
				require.Len(t, records, 1)
				assert.False(t, records[0].Completed)
				assert.Equal(t, "records", records[0].Topic)
				assert.Equal(t, domain.DayKey("2025-03-10"), records[0].Date)
			})

			t.Run("NULL columns are coerced", func(t *testing.T) {
				_, err := db.Exec(`INSERT INTO habit_logs (user_id, habit_id, date) VALUES ($1, 'custom-legacy', '2025-03-10')`, userID)
				require.NoError(t, err)

				records, err := repo.Get(ctx, userID, "2025-03-10")
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, "custom-legacy", records[1].HabitID)
				assert.False(t, records[1].Completed)
				assert.Empty(t, records[1].Name)
			})

			t.Run("ListRange is bounded and ordered", func(t *testing.T) {
				require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: userID, HabitID: "dsa", Date: "2025-03-08", Completed: true}))
				require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: userID, HabitID: "dsa", Date: "2025-02-01", Completed: true}))
				require.NoError(t, repo.Upsert(ctx, domain.HabitRecord{UserID: "someone-else", HabitID: "dsa", Date: "2025-03-09", Completed: true}))

				records, err := repo.ListRange(ctx, userID, "2025-03-01", "2025-03-10")
				require.NoError(t, err)
				require.Len(t, records, 3)
				assert.Equal(t, domain.DayKey("2025-03-08"), records[0].Date)
			})
		})
	}
}

func TestPostgresGoalRepository_Integration(t *testing.T) {
	db := setupTestDB(t, DriverPgx)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresGoalRepository(db)
	ctx := context.Background()
	userID := "pg-user-goals"

	goal, err := domain.NewGoal(userID, "Ship v1", "", "🚀", "#000", 0, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, goal))

	assert.ErrorIs(t, repo.Create(ctx, goal), domain.ErrGoalAlreadyExists)

	fetched, err := repo.GetByID(ctx, userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship v1", fetched.Title)

	fetched.Progress = 11
	assert.ErrorIs(t, repo.Update(ctx, fetched), domain.ErrGoalInvalidProgress)

	fetched.Progress = 7
	require.NoError(t, repo.Update(ctx, fetched))

	list, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].Progress)

	_, err = repo.GetByID(ctx, "intruder", goal.ID)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	_, ok, err := repo.GetMission(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	m := domain.MissionSettings{TotalDays: 90, StartDate: "2025-01-01"}
	require.NoError(t, repo.SaveMission(ctx, userID, m))
	m.TotalDays = 120
	require.NoError(t, repo.SaveMission(ctx, userID, m))

	got, ok, err := repo.GetMission(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, m, got)
}

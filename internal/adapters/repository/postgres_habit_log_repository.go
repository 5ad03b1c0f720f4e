package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

var _ domain.HabitLogRepository = (*PostgresHabitLogRepository)(nil)

type PostgresHabitLogRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitLogRepository(db *sqlx.DB) *PostgresHabitLogRepository {
	return &PostgresHabitLogRepository{db: db}
}

// habitLogRow mirrors the table, where name, completed and topic may be NULL
// for rows written by older clients.
type habitLogRow struct {
	UserID    string         `db:"user_id"`
	HabitID   string         `db:"habit_id"`
	Date      string         `db:"date"`
	Name      sql.NullString `db:"name"`
	Completed sql.NullBool   `db:"completed"`
	Topic     sql.NullString `db:"topic"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (row habitLogRow) toRecord() (domain.HabitRecord, bool) {
	raw := map[string]any{
		"user_id":  row.UserID,
		"habit_id": row.HabitID,
		"date":     row.Date,
		"name":     row.Name.String,
		"topic":    row.Topic.String,
	}
	if row.Completed.Valid {
		raw["completed"] = row.Completed.Bool
	}

	rec, ok := domain.NormalizeRecord(raw)
	if !ok {
		return domain.HabitRecord{}, false
	}
	rec.UpdatedAt = row.UpdatedAt
	return rec, true
}

const selectHabitLogs = `
	SELECT user_id, habit_id, to_char(date, 'YYYY-MM-DD') AS date,
	       name, completed, topic, updated_at
	FROM habit_logs`

func (r *PostgresHabitLogRepository) Get(ctx context.Context, userID string, day domain.DayKey) ([]domain.HabitRecord, error) {
	rows := []habitLogRow{}

	query := selectHabitLogs + `
	WHERE user_id = $1 AND date = CAST($2 AS date)
	ORDER BY created_at ASC, habit_id ASC`

	if err := r.db.SelectContext(ctx, &rows, query, userID, day.String()); err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (r *PostgresHabitLogRepository) ListRange(ctx context.Context, userID string, from, to domain.DayKey) ([]domain.HabitRecord, error) {
	rows := []habitLogRow{}

	query := selectHabitLogs + `
	WHERE user_id = $1
	  AND date >= CAST($2 AS date)
	  AND date <= CAST($3 AS date)
	ORDER BY date ASC, created_at ASC, habit_id ASC`

	if err := r.db.SelectContext(ctx, &rows, query, userID, from.String(), to.String()); err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (r *PostgresHabitLogRepository) Upsert(ctx context.Context, record domain.HabitRecord) error {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO habit_logs (
			user_id, habit_id, date,
			name, completed, topic,
			updated_at
		) VALUES (
			:user_id, :habit_id, CAST(:date AS date),
			:name, :completed, :topic,
			:updated_at
		)
		ON CONFLICT (user_id, habit_id, date) DO UPDATE
		SET name = EXCLUDED.name,
		    completed = EXCLUDED.completed,
		    topic = EXCLUDED.topic,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, map[string]any{
		"user_id":    record.UserID,
		"habit_id":   record.HabitID,
		"date":       record.Date.String(),
		"name":       record.Name,
		"completed":  record.Completed,
		"topic":      record.Topic,
		"updated_at": record.UpdatedAt,
	})
	return err
}

func toRecords(rows []habitLogRow) []domain.HabitRecord {
	records := make([]domain.HabitRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := row.toRecord(); ok {
			records = append(records, rec)
		}
	}
	return records
}

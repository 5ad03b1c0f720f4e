package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

var _ domain.GoalRepository = (*PostgresGoalRepository)(nil)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}

	query := `
		SELECT id, user_id, title, description, progress, target,
		       icon, color, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	now := time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now

	query := `
		INSERT INTO goals (
			id, user_id, title, description,
			progress, target, icon, color,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description,
			:progress, :target, :icon, :color,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	return mapGoalError(err)
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	var goal domain.Goal

	query := `
		SELECT id, user_id, title, description, progress, target,
		       icon, color, created_at, updated_at
		FROM goals
		WHERE user_id = $1 AND id = $2`

	if err := r.db.GetContext(ctx, &goal, query, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = :title,
		    description = :description,
		    progress = :progress,
		    target = :target,
		    icon = :icon,
		    color = :color,
		    updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`

	result, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		return mapGoalError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *PostgresGoalRepository) GetMission(ctx context.Context, userID string) (domain.MissionSettings, bool, error) {
	var settings domain.MissionSettings

	query := `
		SELECT total_days, to_char(start_date, 'YYYY-MM-DD') AS start_date
		FROM mission_settings
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MissionSettings{}, false, nil
		}
		return domain.MissionSettings{}, false, err
	}
	return settings, true, nil
}

func (r *PostgresGoalRepository) SaveMission(ctx context.Context, userID string, settings domain.MissionSettings) error {
	query := `
		INSERT INTO mission_settings (user_id, total_days, start_date, updated_at)
		VALUES ($1, $2, CAST($3 AS date), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET total_days = EXCLUDED.total_days,
		    start_date = EXCLUDED.start_date,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, userID, settings.TotalDays, settings.StartDate.String())
	if pgErrorCode(err) == codeCheckViolation {
		return domain.ErrMissionInvalidDays
	}
	return err
}

func mapGoalError(err error) error {
	switch pgErrorCode(err) {
	case codeUniqueViolation:
		return domain.ErrGoalAlreadyExists
	case codeCheckViolation:
		return domain.ErrGoalInvalidProgress
	}
	return err
}

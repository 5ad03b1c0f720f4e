package domain

import (
	"context"
)

type GoalRepository interface {
	// ListByUserID returns the goals of a user ordered by creation time.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	Create(ctx context.Context, goal *Goal) error

	// GetByID returns ErrGoalNotFound when the goal does not belong to userID.
	GetByID(ctx context.Context, userID, id string) (*Goal, error)

	Update(ctx context.Context, goal *Goal) error

	// GetMission returns ok=false when the user never saved settings.
	GetMission(ctx context.Context, userID string) (MissionSettings, bool, error)

	SaveMission(ctx context.Context, userID string, settings MissionSettings) error
}

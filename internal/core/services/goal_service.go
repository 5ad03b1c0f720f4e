package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

type GoalService struct {
	repo        domain.GoalRepository
	clock       Clock
	missionDays int
	missionFrom domain.DayKey
}

// NewGoalService falls back to missionDays starting at missionStart for users
// without saved settings. An empty missionStart starts the window on first use.
func NewGoalService(repo domain.GoalRepository, clock Clock, missionDays int, missionStart domain.DayKey) *GoalService {
	if missionDays <= 0 {
		missionDays = domain.DefaultMissionDays
	}
	return &GoalService{
		repo:        repo,
		clock:       clock,
		missionDays: missionDays,
		missionFrom: missionStart,
	}
}

type CreateGoalInput struct {
	UserID      string
	Title       string
	Description string
	Icon        string
	Color       string
	Progress    int
	Target      int
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("list goals", err)
	}
	if len(goals) == 0 {
		return domain.DefaultGoals(userID), nil
	}
	return goals, nil
}

// seed persists the starter goals the first time a user changes anything.
func (s *GoalService) seed(ctx context.Context, userID string) error {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return domain.NewPersistenceError("list goals", err)
	}
	if len(goals) > 0 {
		return nil
	}
	for _, g := range domain.DefaultGoals(userID) {
		if err := s.repo.Create(ctx, g); err != nil {
			return domain.NewPersistenceError("create goal", err)
		}
	}
	return nil
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	target := input.Target
	if target == 0 {
		target = 100
	}

	goal, err := domain.NewGoal(input.UserID, input.Title, input.Description, input.Icon, input.Color, input.Progress, target)
	if err != nil {
		return nil, err
	}

	if err := s.seed(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, domain.NewPersistenceError("create goal", err)
	}
	return goal, nil
}

func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID string, progress int) (*domain.Goal, error) {
	if err := s.seed(ctx, userID); err != nil {
		return nil, err
	}

	goal, err := s.repo.GetByID(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return nil, err
		}
		return nil, domain.NewPersistenceError("get goal", err)
	}

	if err := goal.SetProgress(progress); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, domain.NewPersistenceError("update goal", err)
	}
	return goal, nil
}

func (s *GoalService) Mission(ctx context.Context, userID string) (domain.MissionSettings, error) {
	settings, ok, err := s.repo.GetMission(ctx, userID)
	if err != nil {
		return domain.MissionSettings{}, domain.NewPersistenceError("get mission", err)
	}
	if ok {
		return settings, nil
	}

	start := s.missionFrom
	if start.IsZero() {
		start = today(s.clock)
	}
	settings = domain.MissionSettings{TotalDays: s.missionDays, StartDate: start}
	if err := s.repo.SaveMission(ctx, userID, settings); err != nil {
		return domain.MissionSettings{}, domain.NewPersistenceError("save mission", err)
	}
	return settings, nil
}

func (s *GoalService) SetMission(ctx context.Context, userID string, totalDays int, startDate string) (domain.MissionSettings, error) {
	if startDate == "" {
		startDate = today(s.clock).String()
	}
	settings, err := domain.NewMissionSettings(totalDays, startDate)
	if err != nil {
		return domain.MissionSettings{}, err
	}
	if err := s.repo.SaveMission(ctx, userID, settings); err != nil {
		return domain.MissionSettings{}, domain.NewPersistenceError("save mission", err)
	}
	return settings, nil
}

func (s *GoalService) Summary(ctx context.Context, userID string) (*domain.GoalSummary, error) {
	goals, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	mission, err := s.Mission(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.GoalSummary{
		Goals:           goals,
		OverallProgress: OverallProgress(goals),
		Mission:         mission,
		DaysRemaining:   DaysRemaining(mission, today(s.clock)),
	}, nil
}

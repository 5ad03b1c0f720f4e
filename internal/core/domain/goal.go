package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultMissionDays = 90

type Goal struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Progress    int       `json:"progress" db:"progress"`
	Target      int       `json:"target" db:"target"`
	Icon        string    `json:"icon" db:"icon"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

var defaultGoals = []Goal{
	{ID: "salesforce", Title: "Salesforce Trailhead", Description: "Complete 60% of core modules", Progress: 25, Target: 60, Icon: "☁️", Color: "#3B82F6"},
	{ID: "webdev", Title: "Sigma Web Dev Course", Description: "Finish complete course", Progress: 40, Target: 100, Icon: "🌐", Color: "#22C55E"},
	{ID: "java", Title: "Oracle Java Certification", Description: "Complete certification prep", Progress: 15, Target: 100, Icon: "☕", Color: "#F97316"},
	{ID: "cv", Title: "Computer Vision Project", Description: "Build and deploy mini project", Progress: 5, Target: 100, Icon: "👁️", Color: "#A855F7"},
}

// DefaultGoals returns the starter goals shown to users that have none.
func DefaultGoals(userID string) []*Goal {
	out := make([]*Goal, 0, len(defaultGoals))
	for _, g := range defaultGoals {
		g := g
		g.UserID = userID
		out = append(out, &g)
	}
	return out
}

func NewGoal(userID, title, description, icon, color string, progress, target int) (*Goal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return nil, ErrGoalTitleEmpty
	}
	if target <= 0 {
		return nil, ErrGoalInvalidTarget
	}
	if progress < 0 || progress > target {
		return nil, ErrGoalInvalidProgress
	}

	now := time.Now().UTC()
	return &Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       cleanTitle,
		Description: strings.TrimSpace(description),
		Progress:    progress,
		Target:      target,
		Icon:        icon,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Goal) SetProgress(progress int) error {
	if progress < 0 || progress > g.Target {
		return ErrGoalInvalidProgress
	}
	g.Progress = progress
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// Percent is progress relative to target.
func (g *Goal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(g.Progress) / float64(g.Target)))
}

type MissionSettings struct {
	TotalDays int    `json:"total_days" db:"total_days"`
	StartDate DayKey `json:"start_date" db:"start_date"`
}

func NewMissionSettings(totalDays int, startDate string) (MissionSettings, error) {
	if totalDays <= 0 {
		return MissionSettings{}, ErrMissionInvalidDays
	}
	day, err := ParseDayKey(startDate)
	if err != nil {
		return MissionSettings{}, ErrMissionInvalidStart
	}
	return MissionSettings{TotalDays: totalDays, StartDate: day}, nil
}

func (m MissionSettings) EndDate() DayKey {
	return m.StartDate.AddDays(m.TotalDays)
}

type GoalSummary struct {
	Goals           []*Goal         `json:"goals"`
	OverallProgress int             `json:"overall_progress"`
	Mission         MissionSettings `json:"mission"`
	DaysRemaining   int             `json:"days_remaining"`
}

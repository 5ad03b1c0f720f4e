package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const (
	LocalGoalsKey   = "goals"
	LocalMissionKey = "missionSettings"
)

var _ domain.GoalRepository = (*LocalGoalRepository)(nil)

// LocalGoalRepository stores goals and mission settings of the single local
// user next to the habit blob, one document per key.
type LocalGoalRepository struct {
	d *diskv.Diskv

	mu sync.Mutex
}

func NewLocalGoalRepository(basePath string) *LocalGoalRepository {
	return &LocalGoalRepository{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 256 * 1024,
		}),
	}
}

// read must be called with r.mu held. A missing key leaves out untouched.
func (r *LocalGoalRepository) read(key string, out any) (bool, error) {
	val, err := r.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(val) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *LocalGoalRepository) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.d.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *LocalGoalRepository) goals() ([]*domain.Goal, error) {
	var goals []*domain.Goal
	if _, err := r.read(LocalGoalsKey, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *LocalGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.goals()
	if err != nil {
		return nil, err
	}
	out := []*domain.Goal{}
	for _, g := range all {
		if g != nil && g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *LocalGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.goals()
	if err != nil {
		return err
	}
	for _, g := range all {
		if g.UserID == goal.UserID && g.ID == goal.ID {
			return domain.ErrGoalAlreadyExists
		}
	}
	clone := *goal
	return r.write(LocalGoalsKey, append(all, &clone))
}

func (r *LocalGoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.goals()
	if err != nil {
		return nil, err
	}
	for _, g := range all {
		if g.UserID == userID && g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

func (r *LocalGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.goals()
	if err != nil {
		return err
	}
	for i, g := range all {
		if g.UserID == goal.UserID && g.ID == goal.ID {
			clone := *goal
			all[i] = &clone
			return r.write(LocalGoalsKey, all)
		}
	}
	return domain.ErrGoalNotFound
}

func (r *LocalGoalRepository) GetMission(ctx context.Context, userID string) (domain.MissionSettings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var settings domain.MissionSettings
	ok, err := r.read(LocalMissionKey, &settings)
	if err != nil || !ok {
		return domain.MissionSettings{}, false, err
	}
	return settings, true, nil
}

func (r *LocalGoalRepository) SaveMission(ctx context.Context, userID string, settings domain.MissionSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(LocalMissionKey, settings)
}

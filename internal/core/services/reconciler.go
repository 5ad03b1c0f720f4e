package services

import (
	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

// Reconcile merges the default definitions with the records persisted for a
// single day. Defaults come first in declared order, followed by ad-hoc
// habits in the order the store returned them.
//
// A record whose id matches a default is merged into that default; the
// definition's name and icon win over whatever the record carries.
func Reconcile(defaults []domain.HabitDefinition, records []domain.HabitRecord) []domain.Habit {
	byID := make(map[string]domain.HabitRecord, len(records))
	var order []string
	for _, r := range records {
		if _, seen := byID[r.HabitID]; !seen {
			order = append(order, r.HabitID)
		}
		byID[r.HabitID] = r
	}

	isDefault := make(map[string]bool, len(defaults))
	habits := make([]domain.Habit, 0, len(defaults)+len(records))

	for _, def := range defaults {
		isDefault[def.ID] = true
		h := domain.Habit{
			ID:          def.ID,
			Name:        def.Name,
			Icon:        def.Icon,
			TracksTopic: def.TracksTopic,
		}
		if r, ok := byID[def.ID]; ok {
			h.Completed = r.Completed
			h.Topic = r.Topic
		}
		habits = append(habits, h)
	}

	for _, id := range order {
		if isDefault[id] {
			continue
		}
		r := byID[id]
		name := r.Name
		if name == "" {
			name = r.HabitID
		}
		habits = append(habits, domain.Habit{
			ID:          r.HabitID,
			Name:        name,
			Icon:        domain.CustomHabitIcon,
			Completed:   r.Completed,
			Topic:       r.Topic,
			TracksTopic: true,
			Custom:      true,
		})
	}

	return habits
}

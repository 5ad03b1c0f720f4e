package domain

import "time"

type EventType string

const (
	EventHabitCompleted EventType = "habit_completed"
	EventHabitAdded     EventType = "habit_added"
	EventFocusCompleted EventType = "focus_completed"
)

type Event struct {
	Type    EventType `json:"type"`
	UserID  string    `json:"user_id,omitempty"`
	HabitID string    `json:"habit_id,omitempty"`
	Name    string    `json:"name"`
	At      time.Time `json:"at"`
}

func NewEvent(t EventType, userID, habitID, name string) Event {
	return Event{
		Type:    t,
		UserID:  userID,
		HabitID: habitID,
		Name:    name,
		At:      time.Now().UTC(),
	}
}

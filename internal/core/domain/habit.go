package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	CustomHabitIcon   = "⭐"
	CustomHabitPrefix = "custom-"
	MaxHabitNameLen   = 100
	MaxTopicLen       = 500
)

type HabitDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Link        string `json:"link,omitempty"`
	TracksTopic bool   `json:"tracks_topic"`
}

var defaultHabits = []HabitDefinition{
	{ID: "salesforce", Name: "Salesforce Practice", Icon: "☁️", TracksTopic: true},
	{ID: "java", Name: "Java Practice", Icon: "☕", TracksTopic: true},
	{ID: "webdev", Name: "Web Dev Course", Icon: "🌐", TracksTopic: true},
	{ID: "dsa", Name: "DSA Questions", Icon: "🧮", TracksTopic: true},
	{ID: "fitness", Name: "Fitness", Icon: "💪"},
}

// DefaultHabits returns a copy of the built-in definitions in declared order.
func DefaultHabits() []HabitDefinition {
	out := make([]HabitDefinition, len(defaultHabits))
	copy(out, defaultHabits)
	return out
}

// HabitRecord is the persisted state of one habit on one day.
type HabitRecord struct {
	UserID    string    `json:"user_id" db:"user_id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      DayKey    `json:"date" db:"date"`
	Completed bool      `json:"completed" db:"completed"`
	Topic     string    `json:"topic" db:"topic"`
	Name      string    `json:"name" db:"name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Habit is the effective entry shown for a day after reconciliation.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Completed   bool   `json:"completed"`
	Topic       string `json:"topic,omitempty"`
	TracksTopic bool   `json:"tracks_topic"`
	Custom      bool   `json:"custom"`
}

func NewCustomHabitID() string {
	return CustomHabitPrefix + uuid.NewString()
}

func ValidateHabitName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(clean) > MaxHabitNameLen {
		return "", ErrHabitNameTooLong
	}
	return clean, nil
}

func ValidateTopic(topic string) (string, error) {
	if utf8.RuneCountInString(topic) > MaxTopicLen {
		return "", ErrTopicTooLong
	}
	return topic, nil
}

// Record converts the effective entry back into the persisted shape.
func (h Habit) Record(userID string, day DayKey) HabitRecord {
	return HabitRecord{
		UserID:    userID,
		HabitID:   h.ID,
		Date:      day,
		Completed: h.Completed,
		Topic:     h.Topic,
		Name:      h.Name,
		UpdatedAt: time.Now().UTC(),
	}
}

// NormalizeRecord coerces a loosely typed row coming from a store into a
// HabitRecord. Rows without a habit id or a valid date are rejected.
func NormalizeRecord(raw map[string]any) (HabitRecord, bool) {
	rec := HabitRecord{
		UserID:  stringField(raw, "user_id"),
		HabitID: strings.TrimSpace(firstString(raw, "habit_id", "id")),
		Topic:   stringField(raw, "topic"),
		Name:    stringField(raw, "name"),
	}
	if rec.HabitID == "" {
		return HabitRecord{}, false
	}

	if c, ok := raw["completed"].(bool); ok {
		rec.Completed = c
	}

	if ds := stringField(raw, "date"); ds != "" {
		day, err := ParseDayKey(ds)
		if err != nil {
			return HabitRecord{}, false
		}
		rec.Date = day
	}

	return rec, true
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := stringField(raw, k); v != "" {
			return v
		}
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return v
}

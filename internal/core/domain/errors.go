package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects user input before any state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// PersistenceError wraps any failure coming from a record store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pErr *PersistenceError
	if errors.As(err, &pErr) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

var (
	ErrHabitNameEmpty       = &ValidationError{Field: "name", Reason: "cannot be empty"}
	ErrHabitNameTooLong     = &ValidationError{Field: "name", Reason: "is too long (max 100 chars)"}
	ErrTopicTooLong         = &ValidationError{Field: "topic", Reason: "is too long (max 500 chars)"}
	ErrGoalTitleEmpty       = &ValidationError{Field: "title", Reason: "cannot be empty"}
	ErrGoalInvalidTarget    = &ValidationError{Field: "target", Reason: "must be positive"}
	ErrGoalInvalidProgress  = &ValidationError{Field: "progress", Reason: "must be between 0 and target"}
	ErrMissionInvalidDays   = &ValidationError{Field: "total_days", Reason: "must be positive"}
	ErrMissionInvalidStart  = &ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD"}
	ErrFocusTaskEmpty       = &ValidationError{Field: "task", Reason: "cannot be empty"}
	ErrFocusInvalidDuration = &ValidationError{Field: "duration", Reason: "must be positive"}
	ErrInvalidUserID        = &ValidationError{Field: "user_id", Reason: "is required"}

	ErrHabitNotFound     = errors.New("habit not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalAlreadyExists = errors.New("goal already exists")
)

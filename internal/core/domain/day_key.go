package domain

import (
	"errors"
	"time"
)

const DayKeyLayout = "2006-01-02"

var ErrInvalidDayKey = errors.New("invalid day key (must be YYYY-MM-DD)")

// DayKey identifies a calendar day in the consumer's local time zone.
// String order matches calendar order, so it can be used directly as a sort
// or map key.
type DayKey string

func NewDayKey(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.Local
	}
	return DayKey(t.In(loc).Format(DayKeyLayout))
}

func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(DayKeyLayout, s)
	if err != nil {
		return "", ErrInvalidDayKey
	}
	return DayKey(t.Format(DayKeyLayout)), nil
}

func (d DayKey) String() string {
	return string(d)
}

func (d DayKey) date() time.Time {
	t, err := time.Parse(DayKeyLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Time returns midnight of the day in loc.
func (d DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t := d.date()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Ordinal is the number of days since 1970-01-01.
func (d DayKey) Ordinal() int {
	return int(d.date().Unix() / 86400)
}

func (d DayKey) AddDays(n int) DayKey {
	return DayKey(d.date().AddDate(0, 0, n).Format(DayKeyLayout))
}

func (d DayKey) DaysUntil(other DayKey) int {
	return other.Ordinal() - d.Ordinal()
}

func (d DayKey) Weekday() time.Weekday {
	return d.date().Weekday()
}

func (d DayKey) Before(other DayKey) bool {
	return d < other
}

func (d DayKey) IsZero() bool {
	return d == ""
}

package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	Loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Loc: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

func (c SystemClock) Location() *time.Location {
	return c.Loc
}

func today(c Clock) domain.DayKey {
	return domain.NewDayKey(c.Now(), c.Location())
}

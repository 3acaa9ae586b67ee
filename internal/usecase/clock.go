package usecase

import (
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
)

// Clock fixes the time zone used for calendar-day rules (closing dates,
// meeting end instants). Now is replaceable in tests.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func SystemClock(loc *time.Location) Clock {
	return Clock{Location: loc, Now: time.Now}
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.location())
}

// today is the current calendar day as YYYY-MM-DD.
func (c Clock) today() string {
	return c.now().Format(domain.DateLayout)
}

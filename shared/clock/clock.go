// Package clock isolates the one source of non-determinism in charge
// calculation and scheduling so services can be tested against a frozen
// time.
package clock

import (
	"time"

	"hotelier/shared/timezone"
)

type Clock interface {
	Now() time.Time
}

type appClock struct{}

func (appClock) Now() time.Time {
	return timezone.Now()
}

// New returns the clock used in production, reading the application
// timezone.
func New() Clock {
	return appClock{}
}

type fixedClock struct {
	at time.Time
}

func (f fixedClock) Now() time.Time {
	return f.at
}

// Fixed returns a clock frozen at the given instant.
func Fixed(at time.Time) Clock {
	return fixedClock{at: at}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole calendar days from a's date to b's
// date. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b.In(a.Location())).Sub(StartOfDay(a)).Hours() / 24)
}

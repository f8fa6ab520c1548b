// Package clock provides an injectable source of "now" and the calendar
// arithmetic the dashboard needs for its reporting periods.
package clock

import "time"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant. Useful in tests.
type Fixed struct {
	T time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.T
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock time.
// Unlike t.Add(n*24h) this stays on midnight across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

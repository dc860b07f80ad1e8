// Package clock owns every "now / today / tomorrow" computation.
// Instants are stored in UTC. Civil dates are taken in the service location
// and represented as midnight UTC so they compare and serialize stably.
package clock

import "time"

const DateLayout = "2006-01-02"

type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// Fixed returns a clock frozen at t. Used by tests and replays.
func Fixed(loc *time.Location, t time.Time) *Clock {
	c := New(loc)
	c.now = func() time.Time { return t }
	return c
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time { return c.now().UTC() }

func (c *Clock) Today() time.Time { return c.DateOf(c.now()) }

func (c *Clock) Tomorrow() time.Time { return c.Today().AddDate(0, 0, 1) }

func (c *Clock) Yesterday() time.Time { return c.Today().AddDate(0, 0, -1) }

// DateOf returns the civil date of t in the service location.
func (c *Clock) DateOf(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOf returns the instant at which the civil date begins in the service location.
func (c *Clock) StartOf(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc).UTC()
}

// EndOf returns the last representable instant of the civil date.
func (c *Clock) EndOf(date time.Time) time.Time {
	return c.StartOf(date.AddDate(0, 0, 1)).Add(-time.Nanosecond)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(d time.Time) string { return d.Format(DateLayout) }

// SameDate compares two civil dates.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

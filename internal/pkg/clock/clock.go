package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct {
	loc *time.Location
}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// NewIn returns a TimeClocker that reports time in the given location.
// A nil location falls back to UTC.
func NewIn(loc *time.Location) *TimeClocker {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeClocker{loc: loc}
}

// Now returns the current system time.
func (c *TimeClocker) Now() time.Time {
	if c == nil || c.loc == nil {
		return time.Now()
	}
	return time.Now().In(c.loc)
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

// NewFixed returns a Fixed clock stopped at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{At: t}
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	return f.At
}

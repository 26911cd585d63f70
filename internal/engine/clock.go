package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The View samples it once per recomputation to decide which week is "now".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant, e.g. to look at the grid as it
// was on a past date.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

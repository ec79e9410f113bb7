package core

import "time"

// Clock provides the current instant for activity decisions.
// This interface enables dependency injection for deterministic testing.
type Clock interface {
	Now() time.Time
}

// systemClock wraps time.Now for production use
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// defaultClock is used whenever callers pass a nil Clock
var defaultClock Clock = systemClock{}

func orSystem(clock Clock) Clock {
	if clock == nil {
		return defaultClock
	}
	return clock
}

package core

import (
	"fmt"
	"time"
)

// Duration returns the whole minutes between two instants, truncated toward
// zero. Display and reporting only; admissibility decisions never use it.
func Duration(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// TimeRemaining returns EndTime minus the current instant. Negative once the
// auction has ended; callers use the sign to distinguish "about to end" from
// "ended", so there is no clamping to zero.
func TimeRemaining(a AuctionState, clock Clock) time.Duration {
	return a.Window.EndTime.Sub(orSystem(clock).Now())
}

// FormatTimeRemaining renders a countdown for display: "ENDED" once the
// duration is zero or negative, otherwise the leading non-zero unit and
// everything below it, e.g. "1h 1m 5s", "4m 20s", "9s".
func FormatTimeRemaining(d time.Duration) string {
	if d <= 0 {
		return "ENDED"
	}

	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

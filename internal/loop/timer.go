package loop

import (
	"fmt"
	"math"
)

// timerTolerance absorbs float drift from summing fixed tick slices, so a
// 60 s round ends on exactly the 3600th 1/60 s tick.
const timerTolerance = 1e-6

// Timer counts a round down to zero.
type Timer struct {
	remaining float64 // seconds
	ended     bool
}

// NewTimer creates a timer with the given number of seconds.
func NewTimer(seconds float64) *Timer {
	return &Timer{remaining: seconds}
}

// Tick removes dt seconds. Returns true exactly once: on the tick that runs
// the timer out. Ticks after that are ignored.
func (t *Timer) Tick(dt float64) bool {
	if t.ended {
		return false
	}
	t.remaining -= dt
	if t.remaining <= timerTolerance {
		t.remaining = 0
		t.ended = true
		return true
	}
	return false
}

// Remaining returns the seconds left, never negative.
func (t *Timer) Remaining() float64 {
	return math.Max(0, t.remaining)
}

// Ended reports whether the round has run out.
func (t *Timer) Ended() bool {
	return t.ended
}

// Clock splits the remaining time into whole minutes and seconds.
func (t *Timer) Clock() (minutes, seconds int) {
	total := int(math.Floor(t.Remaining()))
	return total / 60, total % 60
}

// String formats the remaining time as MM:SS.
func (t *Timer) String() string {
	m, s := t.Clock()
	return fmt.Sprintf("%02d:%02d", m, s)
}

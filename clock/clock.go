// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Interface is the time source consulted by timed operations.  Implementations decide
// which time base the returned instants carry.
type Interface interface {
	// Now returns the current instant on this clock
	Now() time.Time

	// NewTimer creates a Timer that fires once the given duration has elapsed
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// wallClock reports instants without a monotonic reading, so comparisons and
// subtractions against its instants follow the wall clock, adjustments included.
type wallClock struct {
	systemClock
}

func (wc wallClock) Now() time.Time {
	return time.Now().Round(0)
}

// System returns a clock backed by the time package.  Instants it returns carry the
// monotonic clock reading, which makes durations computed from them immune to wall
// clock changes.
func System() Interface {
	return systemClock{}
}

// Wall returns a clock backed by the time package whose instants have the monotonic
// reading stripped.  Deadlines taken from this clock are compared on the wall clock.
func Wall() Interface {
	return wallClock{}
}

// Timer is a one-shot event source, the analog of time.Timer.  Stop reports whether the
// call prevented the timer from firing.
type Timer interface {
	C() <-chan time.Time
	Reset(time.Duration) bool
	Stop() bool
}

type systemTimer struct {
	*time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.Timer.C
}

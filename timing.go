package fna

import "time"

// GameTime is the timing snapshot handed to Update and Draw. Total is the
// running sum of every Elapsed value measured since the clock was started;
// Elapsed is the duration of the most recent frame.
type GameTime struct {
	Total   time.Duration
	Elapsed time.Duration
}

// Clock wraps a monotonic, free-running timer. The Game samples it once per
// Tick; the delta between consecutive samples is the frame's elapsed time.
// This interface enables dependency injection for testing tick behavior.
type Clock interface {
	// Start resets the clock's reference point.
	Start()

	// ElapsedSinceStart returns the duration since the last Start call.
	// It is non-negative assuming a well-behaved monotonic source.
	ElapsedSinceStart() time.Duration
}

// SystemClock is the default Clock implementation using the standard
// library's monotonic reading of time.Now.
type SystemClock struct {
	reference time.Time
}

// NewSystemClock creates a clock referenced to the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{reference: time.Now()}
}

// Start resets the reference point to now.
func (c *SystemClock) Start() {
	c.reference = time.Now()
}

// ElapsedSinceStart returns the time since the last Start call.
func (c *SystemClock) ElapsedSinceStart() time.Duration {
	return time.Since(c.reference)
}

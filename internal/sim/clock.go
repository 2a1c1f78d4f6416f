package sim

import "time"

// Clock abstracts wall time so the loop can be driven deterministically in
// tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

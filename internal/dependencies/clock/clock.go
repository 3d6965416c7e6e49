package clock

import "time"

// Clock abstracts time for testability
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run after d on its own goroutine
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled call
type Timer interface {
	// Stop prevents the call from firing. It reports whether it
	// stopped the timer before the call ran.
	Stop() bool
}

// RealClock delegates to the time package
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

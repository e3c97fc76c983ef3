package clock

import "time"

// Clock abstracts time so the recording epoch and the playback wait loop can
// run against both real and virtual time. Nothing in macrokey calls time.Now()
// directly on those paths.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Since returns the duration elapsed since t.
	Since(t time.Time) time.Duration
	// After returns a channel that receives the current time after duration d.
	After(d time.Duration) <-chan time.Time
}

// RealClock delegates to the standard time package. Go's wall-clock reads
// carry a monotonic component, so Since is safe for the playback spin loop.
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Seconds converts an elapsed duration into the fractional-second offset
// stored with every recorded event.
func Seconds(d time.Duration) float32 {
	if d < 0 {
		return 0
	}
	return float32(d.Seconds())
}

// Duration converts a fractional-second offset back into a time.Duration.
func Duration(seconds float32) time.Duration {
	return time.Duration(float64(seconds) * float64(time.Second))
}

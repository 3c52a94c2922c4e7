package dream

import (
	"fmt"
	"time"
)

// UpdateRate is a dream's desired repaint cadence: Smooth follows the host
// refresh, Fixed waits at least the interval between frames.
type UpdateRate struct {
	interval time.Duration
}

// Smooth returns a rate that repaints as soon as possible.
func Smooth() UpdateRate {
	return UpdateRate{}
}

// Fixed returns a rate that repaints no sooner than d. Non-positive
// durations are treated as Smooth.
func Fixed(d time.Duration) UpdateRate {
	if d <= 0 {
		return Smooth()
	}
	return UpdateRate{interval: d}
}

// IsSmooth reports whether the rate follows the host refresh.
func (r UpdateRate) IsSmooth() bool {
	return r.interval == 0
}

// Interval returns the minimum delay before the next repaint; zero for Smooth.
func (r UpdateRate) Interval() time.Duration {
	return r.interval
}

func (r UpdateRate) String() string {
	if r.IsSmooth() {
		return "smooth"
	}
	return fmt.Sprintf("fixed(%s)", r.interval)
}

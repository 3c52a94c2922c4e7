package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FrameRate summarizes one batch of frame intervals.
type FrameRate struct {
	// Average is the reciprocal of the mean frame interval.
	Average float64
	// Worst is the reciprocal of the longest frame interval.
	Worst float64
}

// String formats the rates for the on-screen overlay.
func (r FrameRate) String() string {
	return humanize.FtoaWithDigits(r.Average, 1) + " fps (worst " + humanize.FtoaWithDigits(r.Worst, 1) + ")"
}

// FrameMonitor collects frame timestamps in fixed-size batches. When a batch
// is full it is summarized and cleared.
type FrameMonitor struct {
	capacity int
	samples  []time.Time
	latest   FrameRate
	hasValue bool
}

// NewFrameMonitor creates a monitor summarizing every capacity timestamps.
// Capacities below 2 are raised to 2, the minimum that yields an interval.
func NewFrameMonitor(capacity int) *FrameMonitor {
	capacity = max(capacity, 2)
	return &FrameMonitor{
		capacity: capacity,
		samples:  make([]time.Time, 0, capacity),
	}
}

// Record adds a frame timestamp. It returns the new summary when this sample
// completed a batch.
func (m *FrameMonitor) Record(t time.Time) (FrameRate, bool) {
	m.samples = append(m.samples, t)
	if len(m.samples) < m.capacity {
		return FrameRate{}, false
	}

	var total, worst time.Duration
	for i := 1; i < len(m.samples); i++ {
		interval := m.samples[i].Sub(m.samples[i-1])
		total += interval
		worst = max(worst, interval)
	}
	m.samples = m.samples[:0]

	if total <= 0 || worst <= 0 {
		return FrameRate{}, false
	}

	mean := total.Seconds() / float64(m.capacity-1)
	m.latest = FrameRate{
		Average: 1 / mean,
		Worst:   1 / worst.Seconds(),
	}
	m.hasValue = true
	return m.latest, true
}

// Latest returns the most recent summary, if any batch has completed.
func (m *FrameMonitor) Latest() (FrameRate, bool) {
	return m.latest, m.hasValue
}

// Reset discards pending samples and the last summary.
func (m *FrameMonitor) Reset() {
	m.samples = m.samples[:0]
	m.latest = FrameRate{}
	m.hasValue = false
}

package core

import "time"

// FixedStep paces simulation updates with a minimum delay between steps.
// A zero delay lets every tick advance the simulation.
type FixedStep struct {
	delay       time.Duration
	accumulator time.Duration
	last        time.Time

	now func() time.Time
}

// NewFixedStep constructs a FixedStep that allows one step per delay.
func NewFixedStep(delay time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetDelay(delay)
	fs.accumulator = fs.delay
	return fs
}

// SetDelay changes the pacing delay. Negative values are treated as zero.
func (f *FixedStep) SetDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	f.delay = delay
}

// Delay returns the configured pacing delay.
func (f *FixedStep) Delay() time.Duration { return f.delay }

// ShouldStep reports whether the simulation should advance by one step.
func (f *FixedStep) ShouldStep() bool {
	if f.delay == 0 {
		return true
	}
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.delay {
		f.accumulator -= f.delay
		if f.accumulator > f.delay {
			f.accumulator = f.delay
		}
		return true
	}
	return false
}

package blossom

import "time"

// ClickState is the phase of a ClickCounter.
type ClickState uint8

const (
	ClickIdle       ClickState = iota // no clicks counted
	ClickCounting                     // 1..threshold-1 clicks inside the window
	ClickTriggering                   // only observable from inside OnTrigger
)

// String returns the state's name.
func (s ClickState) String() string {
	switch s {
	case ClickIdle:
		return "idle"
	case ClickCounting:
		return "counting"
	case ClickTriggering:
		return "triggering"
	default:
		return "unknown"
	}
}

// ClickCounter counts rapid clicks. Every click restarts an inactivity
// timer; when it expires the count drops back to zero with no side effect.
// Reaching the threshold fires OnTrigger once and resets to idle.
type ClickCounter struct {
	// OnClick runs on every counted click with the new count, before any
	// trigger.
	OnClick func(count int)
	// OnTrigger runs when the count reaches the threshold. The count is
	// already zero and State reports ClickTriggering while it runs.
	OnTrigger func()

	timers     *Timers
	threshold  int
	window     time.Duration
	count      int
	reset      *Timer
	triggers   int
	triggering bool
}

// NewClickCounter creates a counter that triggers after threshold clicks
// with no gap longer than window.
func NewClickCounter(timers *Timers, threshold int, window time.Duration) *ClickCounter {
	if threshold < 1 {
		threshold = 1
	}
	return &ClickCounter{timers: timers, threshold: threshold, window: window}
}

// Click registers one click.
func (c *ClickCounter) Click() {
	c.count++
	if c.OnClick != nil {
		c.OnClick(c.count)
	}

	c.reset.Stop()
	c.reset = c.timers.After(c.window, func() {
		c.count = 0
		c.reset = nil
	})

	if c.count >= c.threshold {
		c.reset.Stop()
		c.reset = nil
		c.count = 0
		c.triggers++
		if c.OnTrigger != nil {
			c.triggering = true
			c.OnTrigger()
			c.triggering = false
		}
	}
}

// Count returns the clicks counted in the current window.
func (c *ClickCounter) Count() int {
	return c.count
}

// State returns the counter's phase.
func (c *ClickCounter) State() ClickState {
	if c.triggering {
		return ClickTriggering
	}
	if c.count == 0 {
		return ClickIdle
	}
	return ClickCounting
}

// Triggers returns how many times the threshold has been reached.
func (c *ClickCounter) Triggers() int {
	return c.triggers
}

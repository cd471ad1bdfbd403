package game

import (
	"context"
	"time"
)

// Stepper is driven by a Clock. A tick runs the simulation rules; a frame
// advances transits and delayed occupancy commits.
type Stepper interface {
	StepTick()
	StepFrame()
}

// TimeProvider supplies the current time to Clock.Run.
type TimeProvider interface {
	Now() time.Time
}

// RealTime reads the system clock.
type RealTime struct{}

// Now returns time.Now().
func (RealTime) Now() time.Time { return time.Now() }

// Clock schedules ticks and frames on a simulated timeline. The first tick
// fires one tick interval after start; frames fire every frame interval.
// When a tick and a frame fall due together the frame runs first, so a
// transit dispatched on the previous tick is never cut short.
type Clock struct {
	target        Stepper
	tickInterval  time.Duration
	frameInterval time.Duration

	elapsed   time.Duration
	nextTick  time.Duration
	nextFrame time.Duration
}

// NewClock creates a clock driving target.
func NewClock(target Stepper, tickInterval, frameInterval time.Duration) *Clock {
	return &Clock{
		target:        target,
		tickInterval:  tickInterval,
		frameInterval: frameInterval,
		nextTick:      tickInterval,
		nextFrame:     frameInterval,
	}
}

// Advance moves the timeline forward by d and runs every frame and tick that
// fell due, in time order. It returns the number of ticks run.
func (c *Clock) Advance(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	end := c.elapsed + d
	ticks := 0
	for min(c.nextTick, c.nextFrame) <= end {
		if c.nextFrame <= c.nextTick {
			c.target.StepFrame()
			c.nextFrame += c.frameInterval
			continue
		}
		c.target.StepTick()
		c.nextTick += c.tickInterval
		ticks++
	}
	c.elapsed = end
	return ticks
}

// Elapsed returns the simulated time advanced so far.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Run advances the clock from real time until ctx is done. onTicks, if
// non-nil, is called after every wake-up that ran at least one tick.
func (c *Clock) Run(ctx context.Context, tp TimeProvider, onTicks func(n int)) error {
	ticker := time.NewTicker(c.frameInterval)
	defer ticker.Stop()

	last := tp.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := tp.Now()
			n := c.Advance(now.Sub(last))
			last = now
			if n > 0 && onTicks != nil {
				onTicks(n)
			}
		}
	}
}

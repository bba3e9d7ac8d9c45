// Package playback owns the discrete step clock of the viewer: a small
// Paused/Playing state machine plus a cancellable, self-rescheduling
// single-shot timer for autoplay. Nothing here knows about rendering.
package playback

import (
	"sync"
	"time"
)

// Speed is an autoplay interval. Off forces Paused.
type Speed time.Duration

const (
	SpeedOff    Speed = 0
	SpeedSlow   Speed = Speed(2000 * time.Millisecond)
	SpeedNormal Speed = Speed(1000 * time.Millisecond)
	SpeedFast   Speed = Speed(400 * time.Millisecond)
)

func (s Speed) String() string {
	switch s {
	case SpeedOff:
		return "off"
	case SpeedSlow:
		return "slow"
	case SpeedNormal:
		return "normal"
	case SpeedFast:
		return "fast"
	}
	return time.Duration(s).String()
}

// Controller owns the current step index exclusively. All other components
// only read it. Safe for concurrent use: the timer fires on its own
// goroutine while the UI goroutine calls Play/Pause/StepTo.
type Controller struct {
	mu         sync.Mutex
	totalSteps int
	index      int
	playing    bool
	speed      Speed

	timer *time.Timer
	seq   uint64 // invalidates ticks scheduled before the last cancel

	// onStep, if set, is called with the new index after every change.
	// Invoked without the lock held.
	onStep func(index int, playing bool)
}

// New creates a paused controller at index 0 for a trace of totalSteps.
func New(totalSteps int) *Controller {
	return &Controller{totalSteps: totalSteps, speed: SpeedOff}
}

// OnStep registers the step-change callback (e.g. a bubbletea message send).
func (c *Controller) OnStep(fn func(index int, playing bool)) {
	c.mu.Lock()
	c.onStep = fn
	c.mu.Unlock()
}

// Index returns the current step index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Playing reports whether autoplay is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// CurrentSpeed returns the configured autoplay interval.
func (c *Controller) CurrentSpeed() Speed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Pending reports whether a scheduled tick is outstanding. There is never
// more than one.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Play starts autoplay. If the interval is Off it is bumped to Normal first.
// Starting at the last index pauses immediately rather than wrapping.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.speed == SpeedOff {
		c.speed = SpeedNormal
	}
	if c.totalSteps == 0 || c.index >= c.totalSteps-1 {
		c.playing = false
		c.cancelLocked()
		notify := c.notifyLocked()
		c.mu.Unlock()
		notify()
		return
	}
	c.playing = true
	c.cancelLocked()
	c.scheduleLocked()
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Pause stops autoplay and cancels any pending tick.
func (c *Controller) Pause() {
	c.mu.Lock()
	c.playing = false
	c.cancelLocked()
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// SetSpeed changes the autoplay interval. Off forces Paused; otherwise the
// play state is kept and any pending tick is rescheduled at the new interval.
func (c *Controller) SetSpeed(v Speed) {
	c.mu.Lock()
	c.speed = v
	c.cancelLocked()
	if v == SpeedOff {
		c.playing = false
	} else if c.playing {
		c.scheduleLocked()
	}
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// StepTo jumps to step i (clamped). Play state is unchanged, but a pending
// tick is cancelled and rescheduled so it can't fire against the old index.
func (c *Controller) StepTo(i int) {
	c.mu.Lock()
	c.index = clamp(i, c.totalSteps)
	c.cancelLocked()
	if c.playing {
		c.scheduleLocked()
	}
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Reset replaces the underlying trace: back to step 0, paused, any pending
// tick cancelled. The configured speed survives.
func (c *Controller) Reset(totalSteps int) {
	c.mu.Lock()
	c.totalSteps = totalSteps
	c.index = 0
	c.playing = false
	c.cancelLocked()
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// Close cancels any outstanding timer. The controller must not be reused.
func (c *Controller) Close() {
	c.mu.Lock()
	c.playing = false
	c.cancelLocked()
	c.mu.Unlock()
}

// tick is the timer callback. A tick whose seq no longer matches was
// cancelled after firing and must be a no-op.
func (c *Controller) tick(seq uint64) {
	c.mu.Lock()
	if seq != c.seq || !c.playing {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if c.index >= c.totalSteps-1 {
		// Autoplay stops at the end rather than wrapping.
		c.playing = false
	} else {
		c.index++
		// Reschedule even when we just arrived at the last index, so the
		// final frame dwells for one interval before the pause.
		c.scheduleLocked()
	}
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

// scheduleLocked arms the single-shot timer. Callers must have cancelled
// any previous one first; the seq bump makes stragglers harmless anyway.
func (c *Controller) scheduleLocked() {
	c.seq++
	seq := c.seq
	c.timer = time.AfterFunc(time.Duration(c.speed), func() { c.tick(seq) })
}

func (c *Controller) cancelLocked() {
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// notifyLocked snapshots the callback and state so it can run unlocked.
func (c *Controller) notifyLocked() func() {
	fn := c.onStep
	if fn == nil {
		return func() {}
	}
	index, playing := c.index, c.playing
	return func() { fn(index, playing) }
}

func clamp(i, totalSteps int) int {
	if totalSteps <= 0 || i < 0 {
		return 0
	}
	if i >= totalSteps {
		return totalSteps - 1
	}
	return i
}

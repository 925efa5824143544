package chatclient

import (
	"sync"
	"time"
)

// Nudge bubble cadence while the panel is closed.
const (
	nudgeInitialDelay    = 3 * time.Second
	nudgeDisplayDuration = 4 * time.Second
	nudgeInterval        = 15 * time.Second
)

// NudgeTimer cycles a transient call-to-action bubble for a closed chat
// panel: hidden for the initial delay, visible for the display duration,
// hidden for the recurring interval, and so on. Opening the panel hides the
// bubble and suspends the cycle; closing it restarts from the initial delay.
//
// At most one transition is ever scheduled. Each reschedule bumps a
// generation counter so a callback from a cancelled schedule cannot fire
// late and corrupt the cycle.
type NudgeTimer struct {
	mu       sync.Mutex
	visible  bool
	open     bool
	stopped  bool
	gen      uint64
	timer    *time.Timer
	onChange func(visible bool)

	initialDelay    time.Duration
	displayDuration time.Duration
	interval        time.Duration
}

// NewNudgeTimer creates a timer in the Hidden state with the panel closed.
// onChange is invoked on every visibility change; it may be nil. The cycle
// does not run until Start.
func NewNudgeTimer(onChange func(visible bool)) *NudgeTimer {
	return &NudgeTimer{
		onChange:        onChange,
		initialDelay:    nudgeInitialDelay,
		displayDuration: nudgeDisplayDuration,
		interval:        nudgeInterval,
	}
}

// newNudgeTimerWithCadence exists for tests that cannot wait out the real
// cadence.
func newNudgeTimerWithCadence(onChange func(bool), initial, display, interval time.Duration) *NudgeTimer {
	t := NewNudgeTimer(onChange)
	t.initialDelay = initial
	t.displayDuration = display
	t.interval = interval
	return t
}

// Start begins the cycle from the initial delay. Starting an already
// running or stopped timer does nothing.
func (t *NudgeTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.open || t.timer != nil {
		return
	}
	t.scheduleLocked(t.initialDelay, true)
}

// PanelOpened hides the bubble and suspends the cycle.
func (t *NudgeTimer) PanelOpened() {
	t.mu.Lock()
	t.open = true
	t.cancelLocked()
	notify := t.setVisibleLocked(false)
	t.mu.Unlock()
	notify()
}

// PanelClosed resumes the cycle from a full initial delay; no partial timer
// state carries over from before the panel opened.
func (t *NudgeTimer) PanelClosed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || !t.open {
		return
	}
	t.open = false
	t.scheduleLocked(t.initialDelay, true)
}

// Stop hides the bubble and ends the cycle for good. Meant for unmount.
func (t *NudgeTimer) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.cancelLocked()
	notify := t.setVisibleLocked(false)
	t.mu.Unlock()
	notify()
}

// Visible reports whether the bubble is currently shown.
func (t *NudgeTimer) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// scheduleLocked arranges the next transition: to Visible when show is
// true, back to Hidden otherwise. Any pending transition is cancelled
// first. Caller holds t.mu.
func (t *NudgeTimer) scheduleLocked(d time.Duration, show bool) {
	t.cancelLocked()
	gen := t.gen
	t.timer = time.AfterFunc(d, func() {
		t.fire(gen, show)
	})
}

func (t *NudgeTimer) fire(gen uint64, show bool) {
	t.mu.Lock()
	if gen != t.gen || t.stopped || t.open {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	notify := t.setVisibleLocked(show)
	if show {
		t.scheduleLocked(t.displayDuration, false)
	} else {
		t.scheduleLocked(t.interval, true)
	}
	t.mu.Unlock()
	notify()
}

// cancelLocked invalidates any pending transition. Caller holds t.mu.
func (t *NudgeTimer) cancelLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// setVisibleLocked updates visibility and returns the notification to run
// once the lock is released. Caller holds t.mu.
func (t *NudgeTimer) setVisibleLocked(visible bool) func() {
	if t.visible == visible || t.onChange == nil {
		t.visible = visible
		return func() {}
	}
	t.visible = visible
	cb := t.onChange
	return func() { cb(visible) }
}

package layout

import (
	"sync"
	"time"
)

// Throttle runs at most one call per interval. Calls arriving inside the
// window replace each other and the latest one runs when the window closes.
// Intermediate calls are dropped, never reordered.
type Throttle struct {
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	idle    *sync.Cond
	last    time.Time
	pending func()
	timer   *time.Timer
	running int
	stopped bool
}

// NewThrottle creates a throttle. A non-positive interval runs every call inline.
func NewThrottle(interval time.Duration) *Throttle {
	t := &Throttle{interval: interval, now: time.Now}
	t.idle = sync.NewCond(&t.mu)
	return t
}

// Call runs fn now if the window is open, otherwise schedules it as the
// trailing call of the current window.
func (t *Throttle) Call(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.interval <= 0 {
		t.mu.Unlock()
		fn()
		return
	}

	now := t.now()
	elapsed := now.Sub(t.last)
	if t.last.IsZero() || elapsed >= t.interval {
		t.last = now
		t.pending = nil
		t.stopTimerLocked()
		t.mu.Unlock()
		fn()
		return
	}

	t.pending = fn
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval-elapsed, t.fire)
	}
	t.mu.Unlock()
}

// Flush runs the trailing call immediately, if any. A trailing call already
// running on the timer finishes before Flush returns.
func (t *Throttle) Flush() {
	t.mu.Lock()
	t.stopTimerLocked()
	for t.running > 0 {
		t.idle.Wait()
	}
	fn := t.pending
	t.pending = nil
	if fn != nil {
		t.last = t.now()
	}
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the trailing call without closing the throttle.
func (t *Throttle) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimerLocked()
	t.pending = nil
}

// Stop drops the trailing call and rejects further calls.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimerLocked()
	t.pending = nil
	t.stopped = true
}

// hasPending reports whether a trailing call is scheduled.
func (t *Throttle) hasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func (t *Throttle) fire() {
	t.mu.Lock()
	t.timer = nil
	fn := t.pending
	t.pending = nil
	if fn == nil || t.stopped {
		t.mu.Unlock()
		return
	}
	t.last = t.now()
	t.running++
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running--
		if t.running == 0 {
			t.idle.Broadcast()
		}
		t.mu.Unlock()
	}()
	fn()
}

func (t *Throttle) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Debounce delays a call until no new trigger has arrived for the delay.
type Debounce struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebounce creates a debouncer. A non-positive delay runs every trigger inline.
func NewDebounce(delay time.Duration) *Debounce {
	return &Debounce{delay: delay}
}

// Trigger (re)arms the timer with fn, replacing any earlier scheduled call.
func (d *Debounce) Trigger(fn func()) {
	if fn == nil {
		return
	}
	if d.delay <= 0 {
		d.Cancel()
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the scheduled call, if any.
func (d *Debounce) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// scheduled reports whether a call is scheduled.
func (d *Debounce) scheduled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

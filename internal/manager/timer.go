package manager

import (
	"sync"
	"time"
)

// Timer measures time since the loop started and between frames.
type Timer struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	frame time.Duration
}

// NewTimer returns a timer started now.
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, start: now()}
}

// Reset restarts the timer.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = t.now()
	t.frame = 0
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Frame returns the delta since the previous Frame call and the elapsed
// time at this call, which becomes the new frame mark.
func (t *Timer) Frame() (dt, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed = t.now().Sub(t.start)
	dt = elapsed - t.frame
	t.frame = elapsed
	return dt, elapsed
}

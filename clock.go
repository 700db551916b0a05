package blossom

import (
	"sort"
	"time"
)

// Timers is a frame-driven one-shot scheduler. Time only moves when the
// host calls Advance, so every callback runs on the update goroutine and
// tests can step time deterministically.
//
// There is no global scheduler; each owner keeps its own Timers.
type Timers struct {
	now   time.Duration
	seq   uint64
	queue []*Timer // ordered by (due, seq)
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	due    time.Duration
	seq    uint64
	fn     func()
	owner  *Timers
	fired  bool
	killed bool
}

// NewTimers creates an empty scheduler at time zero.
func NewTimers() *Timers {
	return &Timers{}
}

// Now returns the scheduler's current time.
func (t *Timers) Now() time.Duration {
	return t.now
}

// Pending returns the number of callbacks that have not fired or been stopped.
func (t *Timers) Pending() int {
	return len(t.queue)
}

// After schedules fn to run once d from now. A non-positive d fires on the
// next Advance call.
func (t *Timers) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	t.seq++
	tm := &Timer{due: t.now + d, seq: t.seq, fn: fn, owner: t}
	i := sort.Search(len(t.queue), func(i int) bool {
		q := t.queue[i]
		return q.due > tm.due || (q.due == tm.due && q.seq > tm.seq)
	})
	t.queue = append(t.queue, nil)
	copy(t.queue[i+1:], t.queue[i:])
	t.queue[i] = tm
	return tm
}

// Advance moves time forward by dt, firing every timer that comes due in
// order. Callbacks may schedule new timers; those fire in the same call if
// they fall due before the new current time.
func (t *Timers) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := t.now + dt
	for len(t.queue) > 0 && t.queue[0].due <= target {
		tm := t.queue[0]
		t.queue[0] = nil
		t.queue = t.queue[1:]
		t.now = tm.due
		tm.fired = true
		if tm.fn != nil {
			tm.fn()
		}
	}
	t.now = target
}

// Stop cancels the timer. It returns true if the call prevented the
// callback from running and false if it already fired or was stopped.
func (tm *Timer) Stop() bool {
	if tm == nil || tm.fired || tm.killed {
		return false
	}
	tm.killed = true
	q := tm.owner.queue
	for i, p := range q {
		if p == tm {
			copy(q[i:], q[i+1:])
			q[len(q)-1] = nil
			tm.owner.queue = q[:len(q)-1]
			break
		}
	}
	return true
}

// Fired reports whether the callback has run.
func (tm *Timer) Fired() bool {
	return tm != nil && tm.fired
}

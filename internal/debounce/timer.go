package debounce

import (
	"sync"
	"time"
)

// Timer is the goroutine flavour of Scheduler: Schedule arranges for fn to
// run on its own goroutine after the delay, and a newer Schedule for the same
// key cancels the older run. It is safe for concurrent use.
type Timer struct {
	delay time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]pendingRun
	stopped bool
}

type pendingRun struct {
	seq   uint64
	timer *time.Timer
}

// NewTimer returns a Timer that waits delay after the last Schedule call.
func NewTimer(delay time.Duration) *Timer {
	return &Timer{delay: delay, pending: make(map[string]pendingRun)}
}

// Schedule runs fn after the delay unless key is scheduled again first.
// After Stop, Schedule is a no-op and returns a zero Handle.
func (t *Timer) Schedule(key string, fn func()) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return Handle{}
	}
	if prev, ok := t.pending[key]; ok {
		prev.timer.Stop()
	}
	t.seq++
	seq := t.seq
	timer := time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		run, ok := t.pending[key]
		if !ok || run.seq != seq {
			// Superseded while waiting for the lock.
			t.mu.Unlock()
			return
		}
		delete(t.pending, key)
		t.mu.Unlock()
		fn()
	})
	t.pending[key] = pendingRun{seq: seq, timer: timer}
	return Handle{Key: key, Seq: seq}
}

// Cancel stops the pending run for key and reports whether there was one.
func (t *Timer) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	run, ok := t.pending[key]
	if !ok {
		return false
	}
	run.timer.Stop()
	delete(t.pending, key)
	return true
}

// Stop cancels every pending run and rejects future ones.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, run := range t.pending {
		run.timer.Stop()
		delete(t.pending, key)
	}
	t.stopped = true
}

package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Handle identifies one scheduled run. Only the newest handle for a key is
// live; scheduling again under the same key supersedes the previous one.
type Handle struct {
	Key string
	Seq uint64
}

// FiredMsg is delivered to the Bubble Tea program when a scheduled delay
// elapses. Pass it to Scheduler.Accept before acting on it.
type FiredMsg struct {
	Handle  Handle
	Payload any
}

// Scheduler debounces Bubble Tea work by key. Timers cannot be stopped once
// handed to the runtime, so cancellation is done by invalidating the handle:
// a fired message whose handle is no longer live is dropped by Accept.
//
// Scheduler is used from the program's Update loop and is not safe for
// concurrent use.
type Scheduler struct {
	seq  uint64
	live map[string]uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[string]uint64)}
}

// Schedule supersedes any pending run for key and returns the new handle
// together with the command that delivers a FiredMsg after delay.
func (s *Scheduler) Schedule(key string, delay time.Duration, payload any) (Handle, tea.Cmd) {
	if s.live == nil {
		s.live = make(map[string]uint64)
	}
	s.seq++
	h := Handle{Key: key, Seq: s.seq}
	s.live[key] = h.Seq

	msg := FiredMsg{Handle: h, Payload: payload}
	if delay <= 0 {
		return h, func() tea.Msg { return msg }
	}
	return h, tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

// Cancel invalidates the pending run for key. It reports whether one existed.
func (s *Scheduler) Cancel(key string) bool {
	if _, ok := s.live[key]; !ok {
		return false
	}
	delete(s.live, key)
	return true
}

// Pending reports whether key has a live handle.
func (s *Scheduler) Pending(key string) bool {
	_, ok := s.live[key]
	return ok
}

// Accept reports whether msg belongs to the live handle for its key and, if
// so, retires the handle. Stale or cancelled messages return false.
func (s *Scheduler) Accept(msg FiredMsg) bool {
	seq, ok := s.live[msg.Handle.Key]
	if !ok || seq != msg.Handle.Seq {
		return false
	}
	delete(s.live, msg.Handle.Key)
	return true
}

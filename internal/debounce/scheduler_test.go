package debounce

import (
	"testing"
	"time"
)

func TestScheduler_NewerHandleSupersedesOlder(t *testing.T) {
	s := NewScheduler()
	first, _ := s.Schedule("search", time.Millisecond, "dr")
	second, cmd := s.Schedule("search", time.Millisecond, "drag")

	if first.Seq == second.Seq {
		t.Fatalf("handles share a sequence number")
	}
	if s.Accept(FiredMsg{Handle: first, Payload: "dr"}) {
		t.Fatalf("stale handle was accepted")
	}

	msg, ok := cmd().(FiredMsg)
	if !ok {
		t.Fatalf("command produced %T, want FiredMsg", msg)
	}
	if msg.Payload != "drag" {
		t.Fatalf("payload = %v, want drag", msg.Payload)
	}
	if !s.Accept(msg) {
		t.Fatalf("live handle was rejected")
	}
	if s.Accept(msg) {
		t.Fatalf("handle accepted twice")
	}
}

func TestScheduler_KeysAreIndependent(t *testing.T) {
	s := NewScheduler()
	a, _ := s.Schedule("a", time.Second, nil)
	b, _ := s.Schedule("b", time.Second, nil)
	if !s.Accept(FiredMsg{Handle: a}) || !s.Accept(FiredMsg{Handle: b}) {
		t.Fatalf("handles under different keys should both be live")
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	h, _ := s.Schedule("search", time.Second, nil)
	if !s.Pending("search") {
		t.Fatalf("Pending = false after Schedule")
	}
	if !s.Cancel("search") {
		t.Fatalf("Cancel = false, want true")
	}
	if s.Cancel("search") {
		t.Fatalf("second Cancel = true, want false")
	}
	if s.Accept(FiredMsg{Handle: h}) {
		t.Fatalf("cancelled handle was accepted")
	}
}

func TestScheduler_ZeroDelayFiresImmediately(t *testing.T) {
	var s Scheduler
	h, cmd := s.Schedule("k", 0, 7)
	msg := cmd().(FiredMsg)
	if msg.Handle != h || msg.Payload != 7 {
		t.Fatalf("msg = %+v, want handle %+v payload 7", msg, h)
	}
}

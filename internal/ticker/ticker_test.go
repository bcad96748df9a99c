package ticker

import (
	"testing"
	"time"
)

func fire(t *testing.T, tm *Timer) TickMsg {
	t.Helper()
	cmd := tm.Start()
	if cmd == nil {
		t.Fatal("expected a command from Start")
	}
	msg, ok := cmd().(TickMsg)
	if !ok {
		t.Fatal("expected TickMsg")
	}
	return msg
}

func TestTimerAcceptsOwnTick(t *testing.T) {
	tm := New(time.Millisecond)
	msg := fire(t, tm)
	if !tm.Accept(msg) {
		t.Error("expected tick to be accepted")
	}
	if tm.Next() == nil {
		t.Error("expected Next to schedule while running")
	}
}

func TestTimerRestartDropsStaleTicks(t *testing.T) {
	tm := New(time.Millisecond)
	stale := fire(t, tm)
	fresh := fire(t, tm)

	if tm.Accept(stale) {
		t.Error("stale tick from the previous run was accepted")
	}
	if !tm.Accept(fresh) {
		t.Error("expected fresh tick to be accepted")
	}
}

func TestTimerStop(t *testing.T) {
	tm := New(time.Millisecond)
	msg := fire(t, tm)

	tm.Stop()
	tm.Stop()

	if tm.Running() {
		t.Error("expected timer to be stopped")
	}
	if tm.Accept(msg) {
		t.Error("tick accepted after Stop")
	}
	if tm.Next() != nil {
		t.Error("expected no command after Stop")
	}
}

func TestTimersAreIndependent(t *testing.T) {
	a := New(time.Millisecond)
	b := New(time.Millisecond)
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids")
	}
	msg := fire(t, a)
	b.Start()
	if b.Accept(msg) {
		t.Error("timer accepted another timer's tick")
	}
}

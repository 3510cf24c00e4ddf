package service

import (
	"sync"
	"testing"
	"time"
)

type recordingSender struct {
	mu    sync.Mutex
	calls []bool // isTyping values in order
}

func (r *recordingSender) SendTypingStatus(friendID string, isTyping bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, isTyping)
}

func (r *recordingSender) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool{}, r.calls...)
}

func newTestNotifier(idle time.Duration) (*TypingNotifier, *recordingSender) {
	sender := &recordingSender{}
	n := NewTypingNotifier(sender, "friend-1")
	n.idle = idle
	return n, sender
}

func TestTypingNotifier_FirstKeystrokeSignalsOnce(t *testing.T) {
	n, sender := newTestNotifier(time.Hour)

	n.Keystroke()
	n.Keystroke()
	n.Keystroke()

	calls := sender.snapshot()
	if len(calls) != 1 || !calls[0] {
		t.Errorf("Rapid keystrokes should emit a single isTyping=true, got %v", calls)
	}
}

func TestTypingNotifier_IdleEmitsStop(t *testing.T) {
	n, sender := newTestNotifier(20 * time.Millisecond)

	n.Keystroke()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sender.snapshot()) == 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	calls := sender.snapshot()
	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("Expected [true false] after idle timeout, got %v", calls)
	}
}

func TestTypingNotifier_KeystrokeRearmsTimer(t *testing.T) {
	n, sender := newTestNotifier(60 * time.Millisecond)

	n.Keystroke()
	time.Sleep(30 * time.Millisecond)
	n.Keystroke() // inside the idle window; timer restarts
	time.Sleep(30 * time.Millisecond)

	if calls := sender.snapshot(); len(calls) != 1 {
		t.Errorf("Stop must not fire while keystrokes keep coming, got %v", calls)
	}
}

func TestTypingNotifier_StopEmitsImmediately(t *testing.T) {
	n, sender := newTestNotifier(time.Hour)

	n.Keystroke()
	n.Stop()

	calls := sender.snapshot()
	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("Expected [true false], got %v", calls)
	}
}

func TestTypingNotifier_StopWithoutTypingIsNoOp(t *testing.T) {
	n, sender := newTestNotifier(time.Hour)

	n.Stop()

	if calls := sender.snapshot(); len(calls) != 0 {
		t.Errorf("Stop with nothing owed should emit nothing, got %v", calls)
	}
}

func TestTypingNotifier_TypeAgainAfterStop(t *testing.T) {
	n, sender := newTestNotifier(time.Hour)

	n.Keystroke()
	n.Stop()
	n.Keystroke()

	calls := sender.snapshot()
	if len(calls) != 3 || !calls[0] || calls[1] || !calls[2] {
		t.Errorf("Expected [true false true], got %v", calls)
	}
}

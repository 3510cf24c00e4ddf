package service

import (
	"sync"
	"time"
)

// typingIdleTimeout is how long after the last keystroke a "stopped
// typing" signal fires
const typingIdleTimeout = 2 * time.Second

// TypingSender is the slice of the store the notifier needs
type TypingSender interface {
	SendTypingStatus(friendID string, isTyping bool)
}

// TypingNotifier debounces keystrokes into typing signals. The store
// forwards every call verbatim, so the debounce lives here, at the
// composer layer: the first keystroke emits isTyping=true, and 2s of
// inactivity (or an explicit Stop) emits isTyping=false.
type TypingNotifier struct {
	sender   TypingSender
	friendID string
	idle     time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	typing bool
}

// NewTypingNotifier creates a notifier for one conversation partner
func NewTypingNotifier(sender TypingSender, friendID string) *TypingNotifier {
	return &TypingNotifier{
		sender:   sender,
		friendID: friendID,
		idle:     typingIdleTimeout,
	}
}

// Keystroke records composer activity, emitting a typing signal on the
// first call and rearming the idle timer on every call
func (t *TypingNotifier) Keystroke() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.typing {
		t.typing = true
		t.sender.SendTypingStatus(t.friendID, true)
	}

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.idle, t.expire)
}

// Stop cancels the timer and emits a final stopped-typing signal if one
// is owed
func (t *TypingNotifier) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.typing {
		t.typing = false
		t.sender.SendTypingStatus(t.friendID, false)
	}
}

func (t *TypingNotifier) expire() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.typing {
		t.typing = false
		t.sender.SendTypingStatus(t.friendID, false)
	}
}

package store

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/errors"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/websocket"
)

// Conn is the slice of the socket client the store depends on. The store
// only observes the connection; it never owns or closes it.
type Conn interface {
	Send(eventType websocket.EventType, payload interface{}) error
	On(eventType websocket.EventType, cb func(websocket.Envelope)) func()
}

// Store reconciles REST-fetched message history with live socket pushes
// and exposes one consistent view of conversations, typing state, and
// the friends list.
type Store struct {
	localUserID string
	conn        Conn

	mu       sync.RWMutex
	messages []api.DirectMessage
	seen     map[string]bool // message ids, for echo dedupe
	typing   map[string]bool // partner user id -> currently typing to us
	friends  []api.Friend
	lastErr  string

	unsubs []func()
}

// New creates a store for the local user bound to a socket connection.
// Call Attach to start receiving pushes and Close to stop.
func New(localUserID string, conn Conn) *Store {
	return &Store{
		localUserID: localUserID,
		conn:        conn,
		seen:        make(map[string]bool),
		typing:      make(map[string]bool),
	}
}

// Attach subscribes the store to inbound socket events
func (s *Store) Attach() {
	s.unsubs = append(s.unsubs,
		s.conn.On(websocket.EventMessage, s.handleMessage),
		s.conn.On(websocket.EventTyping, s.handleTyping),
		s.conn.On(websocket.EventPresence, s.handlePresence),
		s.conn.On(websocket.EventStatusUpdate, s.handleStatusUpdate),
	)
}

// Close unsubscribes from the socket. The connection itself stays up.
func (s *Store) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// LoadMessages fetches message history over REST and replaces the local
// list entirely. A fresh load always wins over stale local state. Empty
// friendID loads the full history.
func (s *Store) LoadMessages(friendID string) error {
	messages, err := api.GetMessages(friendID)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.messages = messages
	s.seen = make(map[string]bool, len(messages))
	for _, m := range messages {
		s.seen[m.ID] = true
	}
	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// SendMessage validates and submits a message, then appends the
// canonical server record so the local view matches server truth.
// A message with no content and no emoticons is rejected before any
// network call.
func (s *Store) SendMessage(receiverID, content string, emoticons, customEmoticons []string) (*api.DirectMessage, error) {
	if content == "" && len(emoticons) == 0 && len(customEmoticons) == 0 {
		return nil, errors.ValidationError("message", "message must have content or emoticons")
	}

	msg, err := api.SendMessage(receiverID, content, emoticons, customEmoticons)
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.mu.Lock()
	if !s.seen[msg.ID] {
		s.seen[msg.ID] = true
		s.messages = append(s.messages, *msg)
	}
	s.lastErr = ""
	s.mu.Unlock()

	return msg, nil
}

// SendTypingStatus forwards a typing signal over the socket. Debouncing
// is the caller's responsibility; the store forwards every call.
func (s *Store) SendTypingStatus(friendID string, isTyping bool) {
	err := s.conn.Send(websocket.EventTyping, websocket.TypingPayload{
		UserID:   s.localUserID,
		ChatID:   friendID,
		IsTyping: isTyping,
	})
	if err != nil {
		logger.Debug("Failed to send typing status", "error", err)
	}
}

// LoadFriends fetches the friends list over REST
func (s *Store) LoadFriends() error {
	friends, err := api.GetFriends()
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.friends = friends
	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// MarkRead marks a conversation read on the server and locally
func (s *Store) MarkRead(friendID string) error {
	if err := api.MarkMessagesRead(friendID); err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].SenderID == friendID {
			s.messages[i].IsRead = true
		}
	}
	s.mu.Unlock()

	return nil
}

// Messages returns every stored message sorted by timestamp. Arrival
// order is not trusted: REST loads and socket pushes interleave.
func (s *Store) Messages() []api.DirectMessage {
	s.mu.RLock()
	out := make([]api.DirectMessage, len(s.messages))
	copy(out, s.messages)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Conversation returns the messages exchanged with one friend, sorted
// by timestamp
func (s *Store) Conversation(friendID string) []api.DirectMessage {
	s.mu.RLock()
	var out []api.DirectMessage
	for _, m := range s.messages {
		if m.SenderID == friendID || m.ReceiverID == friendID {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// UnreadCount counts stored messages addressed to the local user that
// are not yet read
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.messages {
		if m.ReceiverID == s.localUserID && !m.IsRead {
			count++
		}
	}
	return count
}

// Friends returns the cached friends list
func (s *Store) Friends() []api.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Friend, len(s.friends))
	copy(out, s.friends)
	return out
}

// IsTyping reports whether a friend is currently typing to the local user
func (s *Store) IsTyping(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typing[userID]
}

// TypingUsers returns the ids of friends currently typing to the local user
func (s *Store) TypingUsers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.typing))
	for id := range s.typing {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Err returns the last recoverable error surfaced by a REST operation,
// or empty. The UI decides whether to prompt a retry.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr resets the error state
func (s *Store) ClearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// handleMessage appends a pushed message. The backend echoes the
// sender's own message back over the socket, so appends dedupe by
// message id. Messages not involving the local user are never stored.
func (s *Store) handleMessage(env websocket.Envelope) {
	var payload websocket.MessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logger.Error("Malformed message payload", "error", err)
		return
	}

	msg := payload.Message
	if msg.SenderID != s.localUserID && msg.ReceiverID != s.localUserID {
		logger.Warn("Dropping message not involving local user", "message_id", msg.ID)
		return
	}

	s.mu.Lock()
	if !s.seen[msg.ID] {
		s.seen[msg.ID] = true
		s.messages = append(s.messages, msg)
	}
	s.mu.Unlock()
}

// handleTyping applies typing events with last-write-wins semantics per
// partner: entries are replaced, never merged
func (s *Store) handleTyping(env websocket.Envelope) {
	var payload websocket.TypingPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logger.Error("Malformed typing payload", "error", err)
		return
	}

	// Only typing aimed at the local user matters, and the store never
	// tracks its own outbound typing state
	if payload.ChatID != s.localUserID || payload.UserID == s.localUserID {
		logger.Warn("Dropping typing event for another conversation", "user_id", payload.UserID)
		return
	}

	s.mu.Lock()
	if payload.IsTyping {
		s.typing[payload.UserID] = true
	} else {
		delete(s.typing, payload.UserID)
	}
	s.mu.Unlock()
}

func (s *Store) handlePresence(env websocket.Envelope) {
	var payload websocket.PresencePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logger.Error("Malformed presence payload", "error", err)
		return
	}

	s.mu.Lock()
	for i := range s.friends {
		if s.friends[i].ID == payload.UserID {
			s.friends[i].IsOnline = payload.IsOnline
			if payload.LastSeen != nil {
				s.friends[i].LastSeen = payload.LastSeen
			}
			break
		}
	}
	// A friend going offline can no longer be typing
	if !payload.IsOnline {
		delete(s.typing, payload.UserID)
	}
	s.mu.Unlock()
}

func (s *Store) handleStatusUpdate(env websocket.Envelope) {
	var payload websocket.StatusUpdatePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logger.Error("Malformed status payload", "error", err)
		return
	}

	s.mu.Lock()
	for i := range s.friends {
		if s.friends[i].ID == payload.UserID {
			s.friends[i].StatusMessage = payload.StatusMessage
			break
		}
	}
	s.mu.Unlock()
}

package service

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/retrospace/messenger-cli/pkg/api"
	"github.com/retrospace/messenger-cli/pkg/emoticon"
	"github.com/retrospace/messenger-cli/pkg/logger"
	"github.com/retrospace/messenger-cli/pkg/output"
	"github.com/retrospace/messenger-cli/pkg/prompter"
	"github.com/retrospace/messenger-cli/pkg/store"
	"github.com/retrospace/messenger-cli/pkg/websocket"
)

// MessengerService binds the CLI to the conversation store and socket
// client. One instance per session; callers pass it by reference.
type MessengerService struct {
	user  *api.User
	conn  *websocket.Client
	store *store.Store
	table []emoticon.Emoticon

	// overridable in tests
	prompt func(label string) (string, error)
}

// NewMessengerService creates a messenger bound to a session
func NewMessengerService(user *api.User, conn *websocket.Client, st *store.Store) *MessengerService {
	return &MessengerService{
		user:   user,
		conn:   conn,
		store:  st,
		prompt: prompter.PromptString,
	}
}

// Store exposes the underlying conversation store
func (ms *MessengerService) Store() *store.Store {
	return ms.store
}

// LoadEmoticonTable fetches built-in and custom emoticons. Built-ins
// come first: table order is the tie-break for overlapping codes.
func (ms *MessengerService) LoadEmoticonTable() error {
	builtin, err := api.GetEmoticons()
	if err != nil {
		return err
	}

	custom, err := api.GetCustomEmoticons()
	if err != nil {
		// Custom emoticons are optional; built-ins still work
		logger.Warn("Failed to load custom emoticons", "error", err)
		custom = nil
	}

	ms.table = append(builtin, custom...)
	return nil
}

// EmoticonTable returns the loaded emoticon table
func (ms *MessengerService) EmoticonTable() []emoticon.Emoticon {
	return ms.table
}

// Compose prompts for a message to one friend with the socket up, so
// the partner sees a typing indicator while the composer is open. The
// indicator arms when the prompt opens and clears on submit (or after
// the idle timeout, whichever comes first).
func (ms *MessengerService) Compose(friendID string) (string, error) {
	ms.conn.Connect()
	defer ms.conn.Disconnect()

	notifier := NewTypingNotifier(ms.store, friendID)
	notifier.Keystroke()
	defer notifier.Stop()

	return ms.prompt("Message: ")
}

// Send parses the message text against the emoticon table, extracts the
// referenced emoticon ids, and submits it via the store
func (ms *MessengerService) Send(friendID, content string) (*api.DirectMessage, error) {
	tokens := emoticon.Parse(content, ms.table)
	builtin, custom := emoticon.Codes(tokens)

	msg, err := ms.store.SendMessage(friendID, content, builtin, custom)
	if err != nil {
		return nil, err
	}

	logger.Debug("Message sent", "message_id", msg.ID, "emoticons", len(builtin)+len(custom))
	return msg, nil
}

// ListConversations prints one line per conversation partner
func (ms *MessengerService) ListConversations() error {
	if err := ms.store.LoadFriends(); err != nil {
		return err
	}
	if err := ms.store.LoadMessages(""); err != nil {
		return err
	}

	friends := ms.store.Friends()
	if len(friends) == 0 {
		fmt.Println("No friends yet. Add friends on your profile page to start messaging.")
		return nil
	}

	rows := make([][]string, 0, len(friends))
	for _, f := range friends {
		conv := ms.store.Conversation(f.ID)

		last := "(no messages)"
		if len(conv) > 0 {
			last = ms.truncate(conv[len(conv)-1].Content, 40)
		}

		online := "offline"
		if f.IsOnline {
			online = "online"
		}

		unread := 0
		for _, m := range conv {
			if m.SenderID == f.ID && !m.IsRead {
				unread++
			}
		}
		unreadBadge := ""
		if unread > 0 {
			unreadBadge = fmt.Sprintf("%d unread", unread)
		}

		rows = append(rows, []string{f.Username, online, last, unreadBadge})
	}

	output.PrintTable([]string{"Friend", "Status", "Last Message", ""}, rows)
	return nil
}

// ShowConversation prints the message history with one friend
func (ms *MessengerService) ShowConversation(friendID, friendName string) error {
	if err := ms.store.LoadMessages(friendID); err != nil {
		return err
	}

	conv := ms.store.Conversation(friendID)
	if len(conv) == 0 {
		fmt.Printf("No messages with %s yet.\n", friendName)
		return nil
	}

	for _, msg := range conv {
		ms.printMessage(msg, friendName)
	}

	if ms.store.IsTyping(friendID) {
		output.PrintInfo("%s is typing...", friendName)
	}

	// Viewing a conversation marks it read
	if err := ms.store.MarkRead(friendID); err != nil {
		logger.Debug("Failed to mark conversation read", "error", err)
	}

	return nil
}

// ShowUnreadCount prints the unread message count
func (ms *MessengerService) ShowUnreadCount() error {
	count, err := api.GetUnreadMessageCount()
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Println("No unread messages.")
	} else {
		output.PrintInfo("%d unread message(s)", count)
	}
	return nil
}

// Watch connects the socket and streams live conversation events to the
// terminal until interrupted
func (ms *MessengerService) Watch() error {
	logger.Debug("Starting message watcher")

	if err := ms.store.LoadFriends(); err != nil {
		return fmt.Errorf("failed to load friends: %w", err)
	}

	ms.store.Attach()
	defer ms.store.Close()

	ms.conn.Connect()
	defer ms.conn.Disconnect()

	output.PrintInfo("Watching for messages as @%s", ms.user.Username)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println(strings.Repeat("-", 60))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	unsubMsg := ms.conn.On(websocket.EventMessage, ms.handleLiveMessage)
	unsubTyping := ms.conn.On(websocket.EventTyping, ms.handleLiveTyping)
	unsubPresence := ms.conn.On(websocket.EventPresence, ms.handleLivePresence)
	unsubState := ms.conn.OnStateChange(ms.handleStateChange)

	defer func() {
		unsubMsg()
		unsubTyping()
		unsubPresence()
		unsubState()
	}()

	<-sigChan
	fmt.Println("\nStopped watching.")
	return nil
}

// RenderContent tokenizes message content and renders emoticons by name
func (ms *MessengerService) RenderContent(content string) string {
	tokens := emoticon.Parse(content, ms.table)

	var sb strings.Builder
	for _, tok := range tokens {
		if tok.IsEmoticon() {
			sb.WriteString("[")
			sb.WriteString(tok.Emoticon.Name)
			sb.WriteString("]")
		} else {
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

func (ms *MessengerService) printMessage(msg api.DirectMessage, friendName string) {
	sender := "You"
	if msg.SenderID != ms.user.ID {
		sender = "@" + friendName
	}
	fmt.Printf("%s (%s):\n", sender, msg.Time().Format("15:04 Jan 02"))
	fmt.Printf("  %s\n\n", ms.RenderContent(msg.Content))
}

func (ms *MessengerService) handleLiveMessage(env websocket.Envelope) {
	var payload websocket.MessagePayload
	if err := websocket.UnmarshalPayload(env, &payload); err != nil {
		return
	}

	msg := payload.Message
	if msg.SenderID == ms.user.ID {
		return // own echo; the store already dedupes, skip the printout
	}

	name := ms.friendName(msg.SenderID)
	output.PrintSuccess("New message from @%s:", name)
	fmt.Printf("  %s\n\n", ms.RenderContent(msg.Content))
}

func (ms *MessengerService) handleLiveTyping(env websocket.Envelope) {
	var payload websocket.TypingPayload
	if err := websocket.UnmarshalPayload(env, &payload); err != nil {
		return
	}

	if payload.IsTyping {
		fmt.Printf("@%s is typing...\n", ms.friendName(payload.UserID))
	}
}

func (ms *MessengerService) handleLivePresence(env websocket.Envelope) {
	var payload websocket.PresencePayload
	if err := websocket.UnmarshalPayload(env, &payload); err != nil {
		return
	}

	status := "went offline"
	if payload.IsOnline {
		status = "came online"
	}
	output.PrintInfo("@%s %s", ms.friendName(payload.UserID), status)
}

func (ms *MessengerService) handleStateChange(state websocket.ConnectionState) {
	switch state {
	case websocket.StateReconnecting:
		output.PrintWarning("Connection lost, reconnecting...")
	case websocket.StateConnected:
		output.PrintInfo("Connected.")
	case websocket.StateFailed:
		output.PrintError("Connection lost and could not be restored. Run 'retrospace-msg watch' to reconnect.")
	}
}

func (ms *MessengerService) friendName(userID string) string {
	for _, f := range ms.store.Friends() {
		if f.ID == userID {
			return f.Username
		}
	}
	return userID
}

// truncate shortens a message preview on rune boundaries
func (ms *MessengerService) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

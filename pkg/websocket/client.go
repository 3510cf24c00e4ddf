package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/retrospace/messenger-cli/pkg/logger"
)

// EventType tags inbound and outbound envelopes
type EventType string

const (
	EventStatusUpdate EventType = "status_update"
	EventTyping       EventType = "typing"
	EventMessage      EventType = "message"
	EventPresence     EventType = "presence"
	EventHeartbeat    EventType = "heartbeat"

	// EventAny subscribes to every envelope regardless of type
	EventAny EventType = ""
)

// Envelope is the wire format for every socket message
type Envelope struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`          // epoch ms
	ClientID  string          `json:"clientId,omitempty"` // correlation id on outbound envelopes
}

// Config holds WebSocket client configuration
type Config struct {
	Host                 string
	Port                 int
	Path                 string
	UseTLS               bool
	ConnectTimeoutMs     int
	HeartbeatIntervalMs  int
	ReconnectBaseDelayMs int
	MaxReconnectAttempts int
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		Host:                 "localhost",
		Port:                 3000,
		Path:                 "/ws",
		UseTLS:               false,
		ConnectTimeoutMs:     15000,
		HeartbeatIntervalMs:  30000,
		ReconnectBaseDelayMs: 1000,
		MaxReconnectAttempts: 5,
	}
}

// ProductionConfig returns a production configuration
func ProductionConfig(host string) Config {
	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = 443
	cfg.UseTLS = true
	return cfg
}

// ConnectionState represents the state of the WebSocket connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed // reconnect attempts exhausted; only a manual Connect restarts
)

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	MessagesReceived int64
	MessagesSent     int64
	MessagesDropped  int64
	ReconnectCount   int
	LastError        string
	ConnectedAt      time.Time
	DisconnectedAt   time.Time
}

type listener struct {
	id uint64
	cb func(Envelope)
}

type stateListener struct {
	id uint64
	cb func(ConnectionState)
}

// Client owns the single live socket connection for a user session.
// All inbound events fan out to every registered listener; independent
// consumers (message list, typing indicator, presence badge) never
// clobber each other.
type Client struct {
	config Config

	mu     sync.RWMutex
	conn   *websocket.Conn
	userID string
	token  string
	ctx    context.Context
	cancel context.CancelFunc

	state atomic.Value // ConnectionState

	reconnectAttempts int
	heartbeatCancel   context.CancelFunc

	listenersMu    sync.RWMutex
	nextListenerID uint64
	listeners      map[EventType][]listener
	stateListeners []stateListener

	statsLock sync.RWMutex
	stats     ConnectionStats

	// overridable in tests
	dialFunc func() (*websocket.Conn, error)
}

// NewClient creates a new WebSocket client. Callers own the instance;
// there is intentionally no package-level singleton.
func NewClient(config Config) *Client {
	c := &Client{
		config:    config,
		listeners: make(map[EventType][]listener),
	}
	c.dialFunc = c.dial
	c.state.Store(StateDisconnected)
	return c
}

// SetSession sets the user id and auth token used for the next dial
func (c *Client) SetSession(userID, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.token = token
}

// Connect opens the socket for the configured session. It is idempotent:
// calling while connected or connecting is a no-op. A failed dial does
// not return an error; it drops into the same retry path as an
// unexpected close.
func (c *Client) Connect() {
	state := c.State()
	if state == StateConnected || state == StateConnecting || state == StateReconnecting {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.ctx = ctx
	c.cancel = cancel
	c.reconnectAttempts = 0
	c.mu.Unlock()

	c.setState(StateConnecting)

	conn, err := c.dialFunc()
	if err != nil {
		logger.Error("WebSocket connect failed", "error", err)
		c.recordError(err.Error())
		go c.reconnectLoop(ctx)
		return
	}

	c.adoptConn(ctx, conn)
	logger.Debug("WebSocket connected", "host", c.config.Host, "port", c.config.Port)
}

// Disconnect closes the socket and cancels any pending reconnect timers.
// No further reconnection happens until the next Connect call.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(StateDisconnected)
	c.recordDisconnected()

	logger.Debug("WebSocket disconnected")
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	return c.state.Load().(ConnectionState)
}

// On subscribes to envelopes of one type. Use EventAny for every
// envelope. Returns an unsubscribe function.
func (c *Client) On(eventType EventType, cb func(Envelope)) func() {
	c.listenersMu.Lock()
	c.nextListenerID++
	id := c.nextListenerID
	c.listeners[eventType] = append(c.listeners[eventType], listener{id: id, cb: cb})
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		ls := c.listeners[eventType]
		for i := range ls {
			if ls[i].id == id {
				c.listeners[eventType] = append(ls[:i], ls[i+1:]...)
				break
			}
		}
	}
}

// OnStateChange subscribes to connection state transitions
func (c *Client) OnStateChange(cb func(ConnectionState)) func() {
	c.listenersMu.Lock()
	c.nextListenerID++
	id := c.nextListenerID
	c.stateListeners = append(c.stateListeners, stateListener{id: id, cb: cb})
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		for i := range c.stateListeners {
			if c.stateListeners[i].id == id {
				c.stateListeners = append(c.stateListeners[:i], c.stateListeners[i+1:]...)
				break
			}
		}
	}
}

// Send serializes and transmits an envelope immediately. When the socket
// is down the message is dropped, not queued: there is no outbound
// buffer, and the call never fails because of connection state.
func (c *Client) Send(eventType EventType, payload interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || !c.IsConnected() {
		c.recordMessageDropped()
		logger.Debug("WebSocket send dropped, not connected", "type", eventType)
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	env := Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
		ClientID:  uuid.NewString(),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		// Write errors are precursors to a close; the read loop owns the
		// backoff path.
		c.recordError(err.Error())
		logger.Error("WebSocket write error", "error", err)
		return err
	}

	c.recordMessageSent()
	return nil
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

func (c *Client) dial() (*websocket.Conn, error) {
	scheme := "ws"
	if c.config.UseTLS {
		scheme = "wss"
	}

	c.mu.RLock()
	userID := c.userID
	token := c.token
	ctx := c.ctx
	c.mu.RUnlock()

	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.config.Host, c.config.Port),
		Path:   c.config.Path,
	}
	q := u.Query()
	q.Set("userId", userID)
	u.RawQuery = q.Encode()

	// Token travels in the handshake headers, not the query string
	header := make(map[string][]string)
	if token != "" {
		header["Authorization"] = []string{"Bearer " + token}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	dialCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.ConnectTimeoutMs)*time.Millisecond)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), header)
	return conn, err
}

// adoptConn installs a freshly dialed connection and starts its loops.
// The heartbeat loop is scoped to this connection, not the session:
// exactly one runs at a time across reconnects.
func (c *Client) adoptConn(ctx context.Context, conn *websocket.Conn) {
	hbCtx, hbCancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.conn = conn
	c.reconnectAttempts = 0
	if c.heartbeatCancel != nil {
		c.heartbeatCancel()
	}
	c.heartbeatCancel = hbCancel
	c.mu.Unlock()

	c.setState(StateConnected)
	c.recordConnected()

	go c.readLoop(ctx, conn)
	go c.heartbeatLoop(hbCtx)
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer c.handleClose(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			// Socket errors and closes share one recovery path
			if ctx.Err() == nil {
				c.recordError(err.Error())
				logger.Error("WebSocket read error", "error", err)
			}
			return
		}

		c.recordMessageReceived()
		c.dispatch(env)
	}
}

// Emit delivers an envelope to subscribers as if it arrived on the
// socket. Useful for synthetic local events and in tests.
func (c *Client) Emit(env Envelope) {
	c.dispatch(env)
}

func (c *Client) dispatch(env Envelope) {
	c.listenersMu.RLock()
	typed := make([]listener, len(c.listeners[env.Type]))
	copy(typed, c.listeners[env.Type])
	all := make([]listener, len(c.listeners[EventAny]))
	copy(all, c.listeners[EventAny])
	c.listenersMu.RUnlock()

	for _, l := range typed {
		l.cb(env)
	}
	for _, l := range all {
		l.cb(env)
	}
}

func (c *Client) notifyState(state ConnectionState) {
	c.listenersMu.RLock()
	ls := make([]stateListener, len(c.stateListeners))
	copy(ls, c.stateListeners)
	c.listenersMu.RUnlock()

	for _, l := range ls {
		l.cb(state)
	}
}

func (c *Client) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(c.config.HeartbeatIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.IsConnected() {
				if err := c.Send(EventHeartbeat, nil); err != nil {
					logger.Debug("Failed to send heartbeat", "error", err)
				}
			}
		}
	}
}

// handleClose runs after the read loop exits and owns reconnection
func (c *Client) handleClose(ctx context.Context) {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	if c.heartbeatCancel != nil {
		c.heartbeatCancel()
		c.heartbeatCancel = nil
	}
	c.mu.Unlock()

	c.recordDisconnected()

	if ctx.Err() != nil {
		// Explicit Disconnect; no retries
		return
	}

	c.setState(StateReconnecting)
	c.reconnectLoop(ctx)
}

// reconnectLoop retries the dial with linear backoff: attempt n waits
// baseDelay*n. After MaxReconnectAttempts failures the client gives up
// and surfaces StateFailed until a manual Connect.
func (c *Client) reconnectLoop(ctx context.Context) {
	c.setState(StateReconnecting)

	for {
		c.mu.Lock()
		c.reconnectAttempts++
		attempt := c.reconnectAttempts
		c.mu.Unlock()

		if attempt > c.config.MaxReconnectAttempts {
			c.setState(StateFailed)
			logger.Error("Max reconnection attempts reached", "attempts", c.config.MaxReconnectAttempts)
			return
		}

		wait := c.backoffDelay(attempt)
		logger.Debug("Reconnecting WebSocket", "attempt", attempt, "wait_ms", wait.Milliseconds())

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		conn, err := c.dialFunc()
		if err != nil {
			c.recordError(err.Error())
			continue
		}

		c.recordReconnect()
		c.adoptConn(ctx, conn)
		logger.Debug("WebSocket reconnected", "attempt", attempt)
		return
	}
}

// backoffDelay is linear, not exponential: baseDelay * attemptNumber
func (c *Client) backoffDelay(attempt int) time.Duration {
	return time.Duration(c.config.ReconnectBaseDelayMs*attempt) * time.Millisecond
}

func (c *Client) setState(state ConnectionState) {
	prev := c.state.Swap(state)
	if prev != state {
		c.notifyState(state)
	}
}

func (c *Client) recordMessageReceived() {
	c.statsLock.Lock()
	c.stats.MessagesReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordMessageSent() {
	c.statsLock.Lock()
	c.stats.MessagesSent++
	c.statsLock.Unlock()
}

func (c *Client) recordMessageDropped() {
	c.statsLock.Lock()
	c.stats.MessagesDropped++
	c.statsLock.Unlock()
}

func (c *Client) recordReconnect() {
	c.statsLock.Lock()
	c.stats.ReconnectCount++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}

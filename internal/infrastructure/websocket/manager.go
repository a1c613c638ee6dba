package websocket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"moverconnect/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 64
)

// Session identifies the account behind a connection.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// ViewProvider runs one live view. Subscribe blocks, calling push with
// each new projection, until ctx is cancelled.
type ViewProvider interface {
	Subscribe(ctx context.Context, session Session, view string, params map[string]string, push func(data interface{})) error
}

// Client is one WebSocket connection. Each view it subscribes to runs in
// its own goroutine with its own cancel func.
type Client struct {
	Session Session
	Conn    *websocket.Conn
	Send    chan []byte

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	closed    bool
	subs      map[string]context.CancelFunc
	interests map[string]struct{}
	responses map[string]string
}

func NewClient(parent context.Context, session Session, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(parent)
	return &Client{
		Session:   session,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		ctx:       ctx,
		cancel:    cancel,
		subs:      make(map[string]context.CancelFunc),
		interests: make(map[string]struct{}),
		responses: make(map[string]string),
	}
}

// subscribe starts view, cancelling any running subscription to the same
// view first.
func (c *Client) subscribe(provider ViewProvider, view string, params map[string]string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if cancel, ok := c.subs[view]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.subs[view] = cancel
	c.mu.Unlock()

	go func() {
		err := provider.Subscribe(ctx, c.Session, view, params, func(data interface{}) {
			c.sendWithin(ctx, WSMessage{Type: MessageTypeSnapshot, View: view, Data: data})
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("WebSocket: view %s for %s failed: %v", view, c.Session.UserID, err)
			c.sendMessage(WSMessage{Type: MessageTypeError, View: view, Data: errorData{Message: errorMessage(err)}})
		}
	}()
}

func (c *Client) unsubscribe(view string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.subs[view]; ok {
		cancel()
		delete(c.subs, view)
	}
}

// ActiveViews lists the views with a running subscription.
func (c *Client) ActiveViews() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	views := make([]string, 0, len(c.subs))
	for view := range c.subs {
		views = append(views, view)
	}
	sort.Strings(views)
	return views
}

func (c *Client) toggleInterest(requestID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.interests[requestID]; ok {
		delete(c.interests, requestID)
	} else {
		c.interests[requestID] = struct{}{}
	}

	ids := make([]string, 0, len(c.interests))
	for id := range c.interests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Client) respondToQuote(quoteID, response string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.responses[quoteID] = response
	out := make(map[string]string, len(c.responses))
	for k, v := range c.responses {
		out[k] = v
	}
	return out
}

func (c *Client) sendMessage(msg WSMessage) {
	c.sendWithin(context.Background(), msg)
}

// sendWithin queues msg unless ctx is done. The ctx check runs under c.mu,
// which subscribe and unsubscribe hold while cancelling.
func (c *Client) sendWithin(ctx context.Context, msg WSMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("WebSocket: failed to marshal %s message: %v", msg.Type, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || ctx.Err() != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
		logger.Warn("WebSocket: send buffer full for %s, dropping %s", c.Session.UserID, msg.Type)
	}
}

// close cancels every subscription and closes Send. Safe to call twice.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.subs = map[string]context.CancelFunc{}
	close(c.Send)
}

// Manager tracks live connections.
type Manager struct {
	clients    map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	provider   ViewProvider
	done       <-chan struct{}
	mutex      sync.RWMutex
}

func NewManager(provider ViewProvider) *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		provider:   provider,
	}
}

// Start runs the manager's main loop in a goroutine. When ctx ends every
// connection is closed.
func (m *Manager) Start(ctx context.Context) {
	m.done = ctx.Done()
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("WebSocket: client registered: %s", client.Session.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client]; ok {
					delete(m.clients, client)
					client.close()
				}
				m.mutex.Unlock()
				logger.Debug("WebSocket: client unregistered: %s", client.Session.UserID)

			case <-ctx.Done():
				m.mutex.Lock()
				for client := range m.clients {
					client.close()
				}
				m.clients = make(map[*Client]struct{})
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Add registers c. It returns false once the manager has stopped.
func (m *Manager) Add(c *Client) bool {
	select {
	case m.Register <- c:
		return true
	case <-m.done:
		c.close()
		return false
	}
}

// Remove unregisters c and tears down its subscriptions.
func (m *Manager) Remove(c *Client) {
	select {
	case m.Unregister <- c:
	case <-m.done:
		c.close()
	}
}

func (m *Manager) ConnectionCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump reads frames until the connection drops, then unregisters.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Remove(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket: read error for %s: %v", c.Session.UserID, err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump drains Send to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket: write error for %s: %v", c.Session.UserID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

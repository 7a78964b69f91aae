package websockets

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"estatehub/internal/database"
	"estatehub/internal/events"
	"estatehub/internal/repositories"
	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING          = "ping"
	MESSAGE_TYPE_PONG          = "pong"
	MESSAGE_TYPE_ERROR         = "error"
	MESSAGE_TYPE_AUTH_REQUEST  = "auth_request"
	MESSAGE_TYPE_AUTH_RESPONSE = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS  = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE  = "auth_failure"
	MESSAGE_TYPE_NOTIFICATION  = "notification"
	PING_INTERVAL              = 30 * time.Second
	PONG_TIMEOUT               = 60 * time.Second
	WRITE_TIMEOUT              = 10 * time.Second
	MAX_MESSAGE_SIZE           = 64 * 1024
	SEND_CHANNEL_SIZE          = 64
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    uint           `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func newMessage(messageType, channel, action string, data map[string]any) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      messageType,
		Channel:   channel,
		Action:    action,
		Data:      data,
		Timestamp: time.Now(),
	}
}

type Client struct {
	ID         string
	UserID     uint
	Connection *websocket.Conn
	Manager    *Manager
	status     atomic.Int32
	send       chan Message
	closeOnce  sync.Once
}

func (c *Client) Status() int32 {
	return c.status.Load()
}

func (c *Client) authenticate(userID uint) {
	c.UserID = userID
	c.status.Store(STATUS_AUTHENTICATED)
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Manager owns the websocket clients of this process and pushes each user the
// notifications addressed to them.
type Manager struct {
	hub         *Hub
	db          database.DB
	authService *services.AuthService
	userRepo    repositories.UserRepository
	eventBus    *events.EventBus
	log         logger.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	authService *services.AuthService,
	repos repositories.Repository,
) (*Manager, error) {
	log := logger.New("websockets")
	ctx, cancel := context.WithCancel(context.Background())

	manager := &Manager{
		hub: &Hub{
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		db:          db,
		authService: authService,
		userRepo:    repos.User,
		eventBus:    eventBus,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(ctx, manager)

	if err := manager.subscribeToNotifications(); err != nil {
		cancel()
		return nil, err
	}

	return manager, nil
}

func (m *Manager) Close() {
	m.cancel()
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := &Client{
		ID:         uuid.New().String(),
		Connection: c,
		Manager:    m,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	if err := client.sendAuthRequest(); err != nil {
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
		return
	}

	m.hub.register <- client
	defer func() {
		m.hub.unregister <- client
		if err := c.Close(); err != nil {
			log.Debug("connection already closed", "clientID", client.ID)
		}
	}()

	client.startAuthTimeout()
	go client.readPump()
	client.writePump()
}

func (m *Manager) subscribeToNotifications() error {
	log := m.log.Function("subscribeToNotifications")

	if m.eventBus == nil {
		log.Warn("event bus not configured, realtime notifications disabled")
		return nil
	}

	return m.eventBus.Subscribe(events.NOTIFICATION_CHANNEL, func(event events.Event) error {
		if event.UserID == nil {
			log.Warn("notification event without recipient", "eventID", event.ID)
			return nil
		}

		message := newMessage(MESSAGE_TYPE_NOTIFICATION, "user", "notification", event.Data)
		message.UserID = *event.UserID
		m.SendMessageToUser(*event.UserID, message)
		return nil
	})
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				log.Er("unexpected close error", err, "clientID", c.ID)
			}
			return
		}

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == MESSAGE_TYPE_AUTH_RESPONSE {
		c.handleAuthResponse(message)
		return
	}

	if c.Status() != STATUS_AUTHENTICATED {
		c.handleUnauthenticatedMessage(message)
		return
	}

	switch message.Type {
	case MESSAGE_TYPE_PING:
		c.trySend(newMessage(MESSAGE_TYPE_PONG, "system", "pong", nil))
	default:
		log.Warn("Unknown message type", "type", message.Type, "clientID", c.ID)
		c.trySend(newMessage(MESSAGE_TYPE_ERROR, "system", "unknown_message", map[string]any{
			"reason": "Unknown message type",
		}))
	}
}

func (c *Client) trySend(message Message) bool {
	defer func() { _ = recover() }()

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("websocket write error", err, "clientID", c.ID, "messageID", message.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websockets

import (
	"context"
	"testing"
	"time"

	"estatehub/config"
	"estatehub/internal/database"
	"estatehub/internal/events"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *events.EventBus, database.DB) {
	t.Helper()

	db := database.NewWithSQL(testdb.New(t))
	bus := events.New(nil)
	auth := services.NewAuthService(config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})

	manager, err := New(db, bus, auth, repositories.New(db))
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	return manager, bus, db
}

func newTestClient(manager *Manager) *Client {
	client := &Client{
		ID:      uuid.New().String(),
		Manager: manager,
		send:    make(chan Message, SEND_CHANNEL_SIZE),
	}
	manager.registerClient(client)
	return client
}

func TestManager_PushesNotificationsToRecipient(t *testing.T) {
	manager, bus, _ := newTestManager(t)

	recipient := newTestClient(manager)
	recipient.authenticate(7)
	other := newTestClient(manager)
	other.authenticate(8)
	anonymous := newTestClient(manager)

	userID := uint(7)
	require.NoError(t, bus.Publish(events.NOTIFICATION_CHANNEL, events.Event{
		Type:   events.NOTIFICATION,
		UserID: &userID,
		Data:   map[string]any{"message": "Hello"},
	}))

	require.Len(t, recipient.send, 1)
	message := <-recipient.send
	assert.Equal(t, MESSAGE_TYPE_NOTIFICATION, message.Type)
	assert.Equal(t, uint(7), message.UserID)
	assert.Equal(t, "Hello", message.Data["message"])

	assert.Empty(t, other.send)
	assert.Empty(t, anonymous.send)
}

func TestManager_IgnoresEventsWithoutRecipient(t *testing.T) {
	manager, bus, _ := newTestManager(t)

	client := newTestClient(manager)
	client.authenticate(1)

	require.NoError(t, bus.Publish(events.NOTIFICATION_CHANNEL, events.Event{Type: events.NOTIFICATION}))
	assert.Empty(t, client.send)
}

func TestManager_SendMessageToUser_FullBuffer(t *testing.T) {
	manager, _, _ := newTestManager(t)

	client := &Client{ID: "slow", Manager: manager, send: make(chan Message, 1)}
	client.authenticate(3)
	manager.registerClient(client)

	assert.Equal(t, 1, manager.SendMessageToUser(3, newMessage(MESSAGE_TYPE_NOTIFICATION, "user", "notification", nil)))
	assert.Equal(t, 0, manager.SendMessageToUser(3, newMessage(MESSAGE_TYPE_NOTIFICATION, "user", "notification", nil)))
}

func TestManager_UnregisterClosesSendOnce(t *testing.T) {
	manager, _, _ := newTestManager(t)

	client := newTestClient(manager)
	assert.Equal(t, 1, manager.ClientCount())

	client.closeSend()
	client.closeSend()
	manager.unregisterClient(client)
	manager.unregisterClient(client)

	assert.Equal(t, 0, manager.ClientCount())
	assert.False(t, client.trySend(newMessage(MESSAGE_TYPE_PONG, "system", "pong", nil)))
}

func TestClient_HandleAuthResponse(t *testing.T) {
	manager, _, db := newTestManager(t)
	user := testdb.User(t, db.SQL, "Lina", "Landlord", RoleLandlord)

	token, err := manager.authService.IssueToken(context.Background(), user)
	require.NoError(t, err)

	client := newTestClient(manager)
	client.routeMessage(Message{Type: MESSAGE_TYPE_AUTH_RESPONSE, Data: map[string]any{"token": token}})

	assert.Equal(t, STATUS_AUTHENTICATED, client.Status())
	assert.Equal(t, user.ID, client.UserID)

	require.Len(t, client.send, 1)
	assert.Equal(t, MESSAGE_TYPE_AUTH_SUCCESS, (<-client.send).Type)

	client.routeMessage(Message{Type: MESSAGE_TYPE_PING})
	require.Len(t, client.send, 1)
	assert.Equal(t, MESSAGE_TYPE_PONG, (<-client.send).Type)
}

func TestClient_UnauthenticatedMessagesAreBlocked(t *testing.T) {
	manager, _, _ := newTestManager(t)

	client := newTestClient(manager)
	client.routeMessage(Message{Type: MESSAGE_TYPE_PING})

	require.Len(t, client.send, 1)
	message := <-client.send
	assert.Equal(t, MESSAGE_TYPE_AUTH_FAILURE, message.Type)
	assert.Equal(t, "authentication_required", message.Action)
}

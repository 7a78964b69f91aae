package websockets

import (
	"context"
	"sync"
)

const (
	STATUS_UNAUTHENTICATED int32 = iota
	STATUS_AUTHENTICATED
)

type Hub struct {
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(ctx context.Context, m *Manager) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			client.closeSend()
			m.unregisterClient(client)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client
	m.log.Function("registerClient").Debug("Client registered", "clientID", client.ID)
}

func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}
	delete(m.hub.clients, client.ID)
	m.log.Function("unregisterClient").Debug("Client unregistered", "clientID", client.ID, "userID", client.UserID)
}

func (m *Manager) ClientCount() int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()
	return len(m.hub.clients)
}

// SendMessageToUser queues message on every authenticated connection of the user.
// Connections whose buffer is full miss the message; the notification stays
// readable through the API.
func (m *Manager) SendMessageToUser(userID uint, message Message) int {
	log := m.log.Function("SendMessageToUser")

	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	sent := 0
	for _, client := range m.hub.clients {
		if client.Status() != STATUS_AUTHENTICATED || client.UserID != userID {
			continue
		}
		if client.trySend(message) {
			sent++
		} else {
			log.Warn("Client send buffer full, dropping message", "clientID", client.ID, "userID", userID)
		}
	}

	log.Debug("Message sent to user connections", "userID", userID, "messageID", message.ID, "sentTo", sent)
	return sent
}

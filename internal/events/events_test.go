package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDeliveryWithoutClient(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var received []Event
	require.NoError(t, bus.Subscribe(NOTIFICATION_CHANNEL, func(event Event) error {
		received = append(received, event)
		return nil
	}))

	userID := uint(7)
	require.NoError(t, bus.Publish(NOTIFICATION_CHANNEL, Event{
		Type:   NOTIFICATION,
		UserID: &userID,
		Data:   map[string]any{"message": "hello"},
	}))

	require.Len(t, received, 1)
	event := received[0]
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, NOTIFICATION_CHANNEL, event.Channel)
	assert.Equal(t, uint(7), *event.UserID)
	assert.Equal(t, "hello", event.Data["message"])
}

func TestEventBus_OtherChannelsNotDelivered(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	called := false
	require.NoError(t, bus.Subscribe("other", func(event Event) error {
		called = true
		return nil
	}))

	require.NoError(t, bus.Publish(NOTIFICATION_CHANNEL, Event{Type: NOTIFICATION}))
	assert.False(t, called)
}

package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: "hello"})

	event := <-ch
	assert.Equal(t, "notification", event.Event)
	assert.Equal(t, "hello", event.Data)
}

func TestHub_PublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "notification"})

	assert.Empty(t, ch)
}

func TestHub_MultipleSubscribersSameUser(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup2()

	assert.Equal(t, 2, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})

	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: "notification"})

	event1 := <-ch1
	assert.Equal(t, "user-1", event1.UserID)

	event2 := <-ch2
	assert.Equal(t, "user-2", event2.UserID)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("user-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())

	// Channel ditutup oleh cleanup
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Buffer kapasitas 10, event ke-11 harus di-drop tanpa deadlock
	for i := 0; i < 15; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})
	}

	assert.Equal(t, 1, hub.SubscriberCount("user-1"))
}

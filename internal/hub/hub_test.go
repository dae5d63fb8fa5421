package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesTopicSubscribersOnly(t *testing.T) {
	h := New()
	feed := NewClient(4)
	other := NewClient(4)
	h.Subscribe("posts", feed)
	h.Subscribe("game:1", other)

	h.Broadcast("posts", Event{Type: "post.created", Payload: map[string]string{"title": "Devlog"}})

	require.Len(t, feed, 1)
	assert.Len(t, other, 0)

	var got Event
	require.NoError(t, json.Unmarshal(<-feed, &got))
	assert.Equal(t, "post.created", got.Type)
}

func TestBroadcastDropsWhenClientIsFull(t *testing.T) {
	h := New()
	slow := NewClient(1)
	h.Subscribe("posts", slow)

	h.Broadcast("posts", Event{Type: "first"})
	h.Broadcast("posts", Event{Type: "second"})

	assert.Len(t, slow, 1)
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := New()
	client := NewClient(1)
	h.Subscribe("posts", client)
	assert.Equal(t, 1, h.Subscribers("posts"))

	h.Unsubscribe("posts", client)
	assert.Equal(t, 0, h.Subscribers("posts"))

	_, open := <-client
	assert.False(t, open)

	// A second unsubscribe must not close the channel twice.
	h.Unsubscribe("posts", client)
}

func TestCloseDisconnectsEveryClient(t *testing.T) {
	h := New()
	a := NewClient(1)
	b := NewClient(1)
	h.Subscribe("posts", a)
	h.Subscribe("game:1", b)

	h.Close()

	_, open := <-a
	assert.False(t, open)
	_, open = <-b
	assert.False(t, open)
	assert.Zero(t, h.Subscribers("posts"))

	// Unsubscribing after Close must not close the channel twice.
	assert.NotPanics(t, func() { h.Unsubscribe("posts", a) })
}

package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palaro/guessquiz/internal/dependencies/mocks"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/testutil"
)

func TestHubDeliversToAllClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	a := hub.Subscribe()
	b := hub.Subscribe()
	require.Equal(t, 2, hub.ClientCount())

	hub.Publish([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-a)
	assert.Equal(t, []byte("hello"), <-b)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	ch := hub.Subscribe()

	hub.Unsubscribe(ch)
	hub.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	ch := hub.Subscribe()

	// Overflow the client's buffer without reading
	for i := 0; i < 17; i++ {
		hub.Publish([]byte("x"))
	}

	assert.Equal(t, 0, hub.ClientCount())
	// Buffered events then the close are still observable
	n := 0
	for range ch {
		n++
	}
	assert.Equal(t, 16, n)
}

func TestHubCloseRejectsNewSubscribers(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	before := hub.Subscribe()
	hub.Close()

	_, open := <-before
	assert.False(t, open)

	after := hub.Subscribe()
	_, open = <-after
	assert.False(t, open)
}

func TestBroadcasterPublishesEnvelope(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	clk := mocks.NewMockClock()
	b := NewBroadcaster(testutil.NopLogger(), hub, clk)
	ch := hub.Subscribe()

	b.HintIssued(model.Hint{
		Text:            "Vowels revealed: _a_a_a",
		HintsGiven:      2,
		MaxHints:        4,
		PotentialPoints: 2,
	})

	var event model.Event
	require.NoError(t, json.Unmarshal(<-ch, &event))
	assert.Equal(t, model.EventHintIssued, event.Type)
	assert.Equal(t, clk.Now(), event.Timestamp)

	payload := event.Payload.(map[string]any)
	assert.Equal(t, "Vowels revealed: _a_a_a", payload["text"])
	assert.Equal(t, float64(2), payload["hints_given"])
}

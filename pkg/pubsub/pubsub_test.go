package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	ps := New[string]()
	first := ps.Subscribe("topic")
	second := ps.Subscribe("topic")

	ps.Publish("topic", "hello")

	assert.Equal(t, "hello", <-first)
	assert.Equal(t, "hello", <-second)
}

func TestPublish_TopicsAreIndependent(t *testing.T) {
	ps := New[int]()
	a := ps.Subscribe("a")
	ps.Subscribe("b")

	ps.Publish("a", 1)
	ps.Publish("b", 2)

	assert.Equal(t, 1, <-a)
	select {
	case v := <-a:
		t.Fatalf("unexpected value on topic a: %v", v)
	default:
	}
}

func TestPublish_NeverBlocksOnSlowSubscriber(t *testing.T) {
	ps := New[int]()
	ch := ps.Subscribe("topic")

	// far more publishes than the buffer holds; none may block
	for i := 0; i < subscriberBuffer*4; i++ {
		ps.Publish("topic", i)
	}

	// the earliest payloads are still there, the overflow was dropped
	require.Equal(t, 0, <-ch)
	assert.Equal(t, 1, <-ch)
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	ps := New[string]()
	ps.Publish("nobody-listens", "hello")
}

package pubsub

import (
	"sync"
)

// subscriber channels are buffered and publishes never block, so a reader
// that is busy repainting cannot stall the publisher
const subscriberBuffer = 8

type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func New[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, subscriberBuffer)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- data:
		default:
			// drop for slow readers, the payload is presentation-only
		}
	}
}

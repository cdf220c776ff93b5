package pubsub

import (
	"context"
	"sync"
)

// subscriberBuffer absorbs short bursts; events beyond it are dropped for
// that subscriber rather than blocking the publisher.
const subscriberBuffer = 16

// memoryBroker is the in-process broker: one sender, N receiver channels.
// State lives only in this process; a restart drops every subscriber.
type memoryBroker[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
}

// NewMemoryBroker creates an in-process broker.
func NewMemoryBroker[T any]() Broker[T] {
	return &memoryBroker[T]{subs: make(map[int]chan T)}
}

func (b *memoryBroker[T]) Publish(_ context.Context, event T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop instead of blocking.
		}
	}
	return nil
}

func (b *memoryBroker[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	ch := make(chan T, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
			close(stop)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stop:
		}
	}()

	return ch, cancel
}

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// redisBroker fans events out through a Redis channel so subscribers on
// other processes see them too. The delivery contract is the same as the
// in-memory broker: fire-and-forget, no replay.
type redisBroker[T any] struct {
	client  *redis.Client
	channel string
}

// NewRedisBroker creates a broker backed by Redis PUBLISH/SUBSCRIBE.
func NewRedisBroker[T any](client *redis.Client, channel string) Broker[T] {
	return &redisBroker[T]{client: client, channel: channel}
}

func (b *redisBroker[T]) Publish(ctx context.Context, event T) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *redisBroker[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	sub := b.client.Subscribe(ctx, b.channel)
	out := make(chan T, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var event T
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Str("channel", b.channel).Msg("dropping undecodable event")
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		// Closing the subscription ends sub.Channel(), which closes out.
		_ = sub.Close()
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return out, cancel
}

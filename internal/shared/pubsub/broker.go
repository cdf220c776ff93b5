// Package pubsub provides the process-scoped publish/subscribe channel used
// to fan out "book added" events to live subscribers. Delivery is
// fire-and-forget: no persistence, no replay, and subscribers that join after
// a publish never see it.
package pubsub

import "context"

// Broker fans events out to all current subscribers of a single topic.
type Broker[T any] interface {
	// Publish delivers event to every live subscriber. Slow subscribers may
	// miss events; publishing never blocks on them.
	Publish(ctx context.Context, event T) error

	// Subscribe registers a receiver. The returned cancel function tears the
	// subscription down and must be called when the subscriber disconnects;
	// cancelling ctx has the same effect.
	Subscribe(ctx context.Context) (<-chan T, func())
}

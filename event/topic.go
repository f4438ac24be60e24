package event

import (
	"context"

	"github.com/foc-fun/foc-engine-go/id"
)

// Topic names a channel on the bus and fixes its payload type at compile
// time. Two Topic values with the same name share subscribers, so keep
// names unique per payload type.
type Topic[T any] string

// Subscribe registers a typed handler for the topic. A payload published
// under the same name with a different type is logged and dropped rather
// than delivered.
func Subscribe[T any](b *Bus, t Topic[T], h func(ctx context.Context, payload T)) id.SubscriptionID {
	sid := id.NewSubscriptionID()
	b.subscribe(string(t), sid, func(ctx context.Context, payload any) {
		v, ok := payload.(T)
		if !ok {
			b.logMismatch(string(t), sid)
			return
		}
		h(ctx, v)
	})
	return sid
}

// Publish delivers a typed payload to the topic's subscribers and
// returns the number of handlers notified.
func Publish[T any](ctx context.Context, b *Bus, t Topic[T], payload T) int {
	return b.PublishTopic(ctx, string(t), payload)
}

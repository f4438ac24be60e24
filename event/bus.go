// Package event provides an in-process typed publish/subscribe bus.
//
// The Bus itself is an untyped observer registry: handlers subscribe to
// a topic name and receive whatever payload is published there. The
// generic Subscribe/Publish functions layer compile-time payload typing
// on top via Topic[T]:
//
//	var TopicBatchSettled = event.Topic[SettledBatch]("batch.settled")
//
//	event.Subscribe(bus, TopicBatchSettled, func(ctx context.Context, b SettledBatch) {
//	    ...
//	})
//	event.Publish(ctx, bus, TopicBatchSettled, settled)
//
// Delivery is synchronous and in subscription order; a panicking handler
// is recovered and logged, never propagated to the publisher.
package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/foc-fun/foc-engine-go/id"
)

// Handler receives every payload published to a subscribed topic.
type Handler func(ctx context.Context, payload any)

type entry struct {
	id      id.SubscriptionID
	handler Handler
}

// Bus is an in-process publish/subscribe registry. Safe for concurrent
// use; handlers run on the publisher's goroutine.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	topics map[string][]entry
	index  map[string]string // subscription ID → topic
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the structured logger for the bus.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) { b.logger = l }
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		logger: slog.Default(),
		topics: make(map[string][]entry),
		index:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SubscribeTopic registers a handler for a topic name and returns the
// subscription ID used to unsubscribe. Prefer the typed Subscribe
// function where the payload type is known.
func (b *Bus) SubscribeTopic(topic string, h Handler) id.SubscriptionID {
	sid := id.NewSubscriptionID()
	b.subscribe(topic, sid, h)
	return sid
}

func (b *Bus) subscribe(topic string, sid id.SubscriptionID, h Handler) {
	b.mu.Lock()
	b.topics[topic] = append(b.topics[topic], entry{id: sid, handler: h})
	b.index[sid.String()] = topic
	b.mu.Unlock()
}

// Unsubscribe removes a subscription. It reports whether the
// subscription existed; unsubscribing twice is a harmless no-op.
func (b *Bus) Unsubscribe(sid id.SubscriptionID) bool {
	key := sid.String()

	b.mu.Lock()
	defer b.mu.Unlock()

	topic, ok := b.index[key]
	if !ok {
		return false
	}
	delete(b.index, key)

	subs := b.topics[topic]
	for i, e := range subs {
		if e.id.String() == key {
			b.topics[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
	return true
}

// PublishTopic delivers a payload to every handler subscribed to the
// topic, in subscription order, and returns the number of handlers
// notified. Publishing to a topic with no subscribers is a no-op.
func (b *Bus) PublishTopic(ctx context.Context, topic string, payload any) int {
	b.mu.RLock()
	subs := make([]entry, len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.RUnlock()

	for _, e := range subs {
		b.deliver(ctx, topic, e, payload)
	}
	return len(subs)
}

// SubscriberCount returns the number of active subscriptions for a topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// deliver invokes one handler, containing any panic.
func (b *Bus) deliver(ctx context.Context, topic string, e entry, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				slog.String("topic", topic),
				slog.String("subscription", e.id.String()),
				slog.Any("panic", r),
			)
		}
	}()
	e.handler(ctx, payload)
}

// logMismatch records a typed subscription receiving a foreign payload.
func (b *Bus) logMismatch(topic string, sid id.SubscriptionID) {
	b.logger.Warn("event payload type mismatch, dropped",
		slog.String("topic", topic),
		slog.String("subscription", sid.String()),
	)
}

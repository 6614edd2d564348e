package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

const channelPrefix = "changes."

// RedisBus is an adapter.ChangeBus backed by Redis pub/sub, so record
// changes made on one instance reach watchers on every other instance.
// Events are published to one channel per collection.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a new RedisBus instance.
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{
		client: client,
	}
}

// Publish serializes the event and publishes it to its collection channel.
func (b *RedisBus) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	if err := b.client.Publish(ctx, channelPrefix+event.Collection, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe opens a Redis subscription on the given collections.
func (b *RedisBus) Subscribe(ctx context.Context, collections ...string) (adapter.Subscription, error) {
	channels := make([]string, len(collections))
	for i, c := range collections {
		channels[i] = channelPrefix + c
	}

	pubsub := b.client.Subscribe(ctx, channels...)
	// Force the subscription to be established before returning so no event
	// published afterwards is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to change channels: %w", err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan adapter.ChangeEvent, subscriptionBuffer),
		errs:   make(chan error, 1),
	}
	go sub.consume()

	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan adapter.ChangeEvent
	errs   chan error
}

// Events returns the event channel. It is closed when the subscription ends.
func (s *redisSubscription) Events() <-chan adapter.ChangeEvent {
	return s.events
}

// Errors returns the error channel.
func (s *redisSubscription) Errors() <-chan error {
	return s.errs
}

// Close tears the Redis subscription down; consume then drains out and
// closes the channels.
func (s *redisSubscription) Close() {
	_ = s.pubsub.Close()
}

func (s *redisSubscription) consume() {
	defer close(s.events)
	defer close(s.errs)

	for msg := range s.pubsub.Channel() {
		var event adapter.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			slog.Warn("Dropping malformed change event",
				"channel", msg.Channel,
				"error", err,
			)
			continue
		}

		select {
		case s.events <- event:
		default:
			// Slow watcher; it recomputes per event, so the next delivered
			// one restores consistency.
		}
	}
}

// Package events implements the change bus that fans record mutations out to
// statement watchers, either in process or through Redis pub/sub.
package events

import (
	"context"
	"sync"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

const subscriptionBuffer = 32

// MemoryBus is an in-process adapter.ChangeBus for single-instance
// deployments and tests.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[*memorySubscription]struct{}
}

// NewMemoryBus creates a new MemoryBus instance.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subs: make(map[*memorySubscription]struct{}),
	}
}

type memorySubscription struct {
	bus         *MemoryBus
	events      chan adapter.ChangeEvent
	errs        chan error
	collections map[string]struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// Events returns the event channel. It is closed on Close.
func (s *memorySubscription) Events() <-chan adapter.ChangeEvent {
	return s.events
}

// Errors returns the error channel. The in-process bus never fails, so it
// only ever closes.
func (s *memorySubscription) Errors() <-chan error {
	return s.errs
}

// Close unregisters the subscription and closes its channels.
func (s *memorySubscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.done)
		close(s.events)
		close(s.errs)
	})
}

// Publish delivers the event to every subscription watching its collection.
// A subscriber that stopped draining loses events rather than blocking the
// publisher; watchers recompute the full statement per event, so the next
// delivered one restores consistency.
func (b *MemoryBus) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if _, ok := sub.collections[event.Collection]; !ok {
			continue
		}
		select {
		case sub.events <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscription for the given collections. The
// subscription also closes when ctx ends.
func (b *MemoryBus) Subscribe(ctx context.Context, collections ...string) (adapter.Subscription, error) {
	sub := &memorySubscription{
		bus:         b,
		events:      make(chan adapter.ChangeEvent, subscriptionBuffer),
		errs:        make(chan error, 1),
		collections: make(map[string]struct{}, len(collections)),
		done:        make(chan struct{}),
	}
	for _, c := range collections {
		sub.collections[c] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Collection names for change notifications. They mirror the persistence
// table names so a subscriber can name what it watches.
const (
	CollectionCards        = "cards"
	CollectionExpenses     = "expenses"
	CollectionBillPayments = "bill_payments"
)

// ChangeKind is the kind of mutation a change event describes.
type ChangeKind string

const (
	ChangeKindCreated ChangeKind = "created"
	ChangeKindUpdated ChangeKind = "updated"
	ChangeKindDeleted ChangeKind = "deleted"
)

// ChangeEvent is a push notification that records in a collection changed.
// CardID is uuid.Nil when the mutation is not tied to a single card.
type ChangeEvent struct {
	Collection string     `json:"collection"`
	Kind       ChangeKind `json:"kind"`
	UserID     uuid.UUID  `json:"user_id"`
	Profile    string     `json:"profile"`
	CardID     uuid.UUID  `json:"card_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Matches reports whether the event concerns the given owner and card.
// Events without a card reference match any card of the owner.
func (e ChangeEvent) Matches(userID uuid.UUID, profile string, cardID uuid.UUID) bool {
	if e.UserID != userID || e.Profile != profile {
		return false
	}
	return e.CardID == uuid.Nil || e.CardID == cardID
}

// Subscription is a live feed of change events. Close releases the
// underlying resources; after Close no more events are delivered.
type Subscription interface {
	// Events returns the event channel. It is closed when the subscription ends.
	Events() <-chan ChangeEvent

	// Errors returns the channel on which stream failures are surfaced.
	Errors() <-chan error

	// Close releases the subscription.
	Close()
}

// ChangeBus distributes change notifications between record-stream owners
// and observers. Implementations must deliver each published event to every
// live subscription watching the event's collection.
type ChangeBus interface {
	// Publish sends a change event to all matching subscribers.
	Publish(ctx context.Context, event ChangeEvent) error

	// Subscribe opens a subscription for the given collections.
	Subscribe(ctx context.Context, collections ...string) (Subscription, error)
}

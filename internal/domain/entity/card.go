// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card represents a credit card owned by a user+profile pair.
// ClosingDay and DueDay drive the billing-cycle computation; both are
// calendar days in [1, 31] and are clamped to the last day of shorter months.
type Card struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Profile    string
	Name       string
	Limit      decimal.Decimal
	ClosingDay int
	DueDay     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// NewCard creates a new Card entity.
func NewCard(
	userID uuid.UUID,
	profile string,
	name string,
	limit decimal.Decimal,
	closingDay int,
	dueDay int,
) *Card {
	now := time.Now().UTC()

	return &Card{
		ID:         uuid.New(),
		UserID:     userID,
		Profile:    profile,
		Name:       name,
		Limit:      limit,
		ClosingDay: closingDay,
		DueDay:     dueDay,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HasValidCycleConfig reports whether the card carries a usable
// closing/due day pair. Statement computation requires this to hold.
func (c *Card) HasValidCycleConfig() bool {
	return c.ClosingDay >= 1 && c.ClosingDay <= 31 && c.DueDay >= 1 && c.DueDay <= 31
}

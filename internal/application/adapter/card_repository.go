// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// CardRepository defines the interface for card persistence operations.
// Every lookup is scoped by user and profile; the store is shared and
// unscoped reads are never performed.
type CardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.Card) error

	// FindByID retrieves a card by ID with ownership check.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Card, error)

	// FindByOwner retrieves all cards for a user/profile pair.
	FindByOwner(ctx context.Context, userID uuid.UUID, profile string) ([]*entity.Card, error)

	// Update updates an existing card in the database.
	Update(ctx context.Context, card *entity.Card) error

	// Delete soft-deletes a card from the database.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error
}

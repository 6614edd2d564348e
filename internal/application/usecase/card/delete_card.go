package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

// DeleteCardInput represents the input for card deletion.
type DeleteCardInput struct {
	CardID  uuid.UUID
	UserID  uuid.UUID
	Profile string
}

// DeleteCardOutput represents the output of card deletion.
type DeleteCardOutput struct {
	Success bool
}

// DeleteCardUseCase handles card deletion logic. Expenses and bill payments
// keep their rows; they simply stop resolving to a card.
type DeleteCardUseCase struct {
	cardRepo  adapter.CardRepository
	changeBus adapter.ChangeBus
	clock     adapter.Clock
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(
	cardRepo adapter.CardRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		cardRepo:  cardRepo,
		changeBus: changeBus,
		clock:     clock,
	}
}

// Execute performs the card deletion (soft delete).
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) (*DeleteCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	if err := uc.cardRepo.Delete(ctx, card.ID, input.UserID, input.Profile); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	publishCardChange(ctx, uc.changeBus, uc.clock, adapter.ChangeKindDeleted, card)

	return &DeleteCardOutput{Success: true}, nil
}

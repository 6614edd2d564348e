package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// UpdateCardInput represents the input for card update. All fields are
// replaced; partial updates are resolved by the controller before reaching
// the use case.
type UpdateCardInput struct {
	CardID     uuid.UUID
	UserID     uuid.UUID
	Profile    string
	Name       string
	Limit      decimal.Decimal
	ClosingDay int
	DueDay     int
}

// UpdateCardOutput represents the output of card update.
type UpdateCardOutput struct {
	Card *entity.Card
}

// UpdateCardUseCase handles card update logic. Changing the closing or due
// day re-partitions the card's expenses across cycles, so watchers are
// notified the same way as for expense changes.
type UpdateCardUseCase struct {
	cardRepo  adapter.CardRepository
	changeBus adapter.ChangeBus
	clock     adapter.Clock
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(
	cardRepo adapter.CardRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cardRepo:  cardRepo,
		changeBus: changeBus,
		clock:     clock,
	}
}

// Execute performs the card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	if err := validateCardFields(input.Name, input.Limit, input.ClosingDay, input.DueDay); err != nil {
		return nil, err
	}

	card, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	card.Name = strings.TrimSpace(input.Name)
	card.Limit = input.Limit
	card.ClosingDay = input.ClosingDay
	card.DueDay = input.DueDay
	card.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	publishCardChange(ctx, uc.changeBus, uc.clock, adapter.ChangeKindUpdated, card)

	return &UpdateCardOutput{Card: card}, nil
}

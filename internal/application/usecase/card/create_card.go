// Package card contains card-related use cases.
package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
)

// MaxCardNameLength is the maximum allowed length for card names.
const MaxCardNameLength = 100

// CreateCardInput represents the input for card creation.
type CreateCardInput struct {
	UserID     uuid.UUID
	Profile    string
	Name       string
	Limit      decimal.Decimal
	ClosingDay int
	DueDay     int
}

// CreateCardOutput represents the output of card creation.
type CreateCardOutput struct {
	Card *entity.Card
}

// CreateCardUseCase handles card creation logic.
type CreateCardUseCase struct {
	cardRepo  adapter.CardRepository
	changeBus adapter.ChangeBus
	clock     adapter.Clock
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(
	cardRepo adapter.CardRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *CreateCardUseCase {
	return &CreateCardUseCase{
		cardRepo:  cardRepo,
		changeBus: changeBus,
		clock:     clock,
	}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	if err := validateCardFields(input.Name, input.Limit, input.ClosingDay, input.DueDay); err != nil {
		return nil, err
	}

	card := entity.NewCard(
		input.UserID,
		input.Profile,
		strings.TrimSpace(input.Name),
		input.Limit,
		input.ClosingDay,
		input.DueDay,
	)

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	publishCardChange(ctx, uc.changeBus, uc.clock, adapter.ChangeKindCreated, card)

	return &CreateCardOutput{Card: card}, nil
}

// validateCardFields checks the invariants shared by create and update.
func validateCardFields(name string, limit decimal.Decimal, closingDay, dueDay int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > MaxCardNameLength {
		return domainerror.NewCardError(
			domainerror.ErrCodeEmptyCardName,
			fmt.Sprintf("card name must be between 1 and %d characters", MaxCardNameLength),
			domainerror.ErrEmptyCardName,
		)
	}

	if limit.IsNegative() {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardLimit,
			"card limit cannot be negative",
			domainerror.ErrInvalidCardLimit,
		)
	}

	if closingDay < 1 || closingDay > 31 {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidClosingDay,
			"closing day must be between 1 and 31",
			domainerror.ErrInvalidClosingDay,
		)
	}

	if dueDay < 1 || dueDay > 31 {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	return nil
}

// publishCardChange notifies statement watchers. A failed publish only delays
// their refresh, so the write itself never fails on it.
func publishCardChange(ctx context.Context, bus adapter.ChangeBus, clock adapter.Clock, kind adapter.ChangeKind, card *entity.Card) {
	_ = bus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionCards,
		Kind:       kind,
		UserID:     card.UserID,
		Profile:    card.Profile,
		CardID:     card.ID,
		OccurredAt: clock.Now(),
	})
}

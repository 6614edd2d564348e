package card

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// ListCardsInput represents the input for listing a user's cards.
type ListCardsInput struct {
	UserID  uuid.UUID
	Profile string
}

// ListCardsOutput represents the output of listing cards.
type ListCardsOutput struct {
	Cards []*entity.Card
}

// ListCardsUseCase handles card listing logic.
type ListCardsUseCase struct {
	cardRepo adapter.CardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
	}
}

// Execute lists the cards of one user+profile pair, ordered by name.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindByOwner(ctx, input.UserID, input.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Name < cards[j].Name
	})

	return &ListCardsOutput{Cards: cards}, nil
}

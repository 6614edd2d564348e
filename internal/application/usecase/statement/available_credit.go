package statement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// GetAvailableCreditInput represents the input for the limit-usage query.
type GetAvailableCreditInput struct {
	UserID  uuid.UUID
	Profile string
	CardID  uuid.UUID
}

// GetAvailableCreditUseCase computes how much of the card limit is still
// usable: limit − current cycle net billed − future installments not yet
// billed + payments already applied to the current cycle.
type GetAvailableCreditUseCase struct {
	getStatement *GetStatementUseCase
	cardRepo     adapter.CardRepository
	expenseRepo  adapter.ExpenseRepository
	clock        adapter.Clock
}

// NewGetAvailableCreditUseCase creates a new GetAvailableCreditUseCase instance.
func NewGetAvailableCreditUseCase(
	getStatement *GetStatementUseCase,
	cardRepo adapter.CardRepository,
	expenseRepo adapter.ExpenseRepository,
	clock adapter.Clock,
) *GetAvailableCreditUseCase {
	return &GetAvailableCreditUseCase{
		getStatement: getStatement,
		cardRepo:     cardRepo,
		expenseRepo:  expenseRepo,
		clock:        clock,
	}
}

// Execute computes the card's available credit for the current cycle.
func (uc *GetAvailableCreditUseCase) Execute(ctx context.Context, input GetAvailableCreditInput) (*entity.AvailableCredit, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	current, err := uc.getStatement.computeForCard(ctx, card, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	// Installments dated after the current closing date are committed limit
	// even though no cycle has billed them yet.
	futureStart := current.CycleEnd.Add(time.Nanosecond)
	futureBilled, err := uc.expenseRepo.SumByFilter(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		Profile:   input.Profile,
		CardID:    &card.ID,
		StartDate: &futureStart,
	})
	if err != nil {
		return nil, statementUnavailable(err)
	}

	available := card.Limit.
		Sub(current.NetTotal).
		Sub(futureBilled).
		Add(current.PaidTotal)

	return &entity.AvailableCredit{
		CardID:          card.ID,
		Limit:           card.Limit,
		CurrentCycleNet: current.NetTotal,
		FutureBilled:    futureBilled,
		CurrentPaid:     current.PaidTotal,
		Available:       available,
	}, nil
}

package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion. When
// DeleteSiblings is set on an installment, every record of the purchase is
// removed.
type DeleteExpenseInput struct {
	ExpenseID      uuid.UUID
	UserID         uuid.UUID
	Profile        string
	DeleteSiblings bool
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct {
	DeletedCount int64
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	changeBus   adapter.ChangeBus
	clock       adapter.Clock
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		changeBus:   changeBus,
		clock:       clock,
	}
}

// Execute performs the expense deletion (soft delete).
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	var deleted int64
	if input.DeleteSiblings && expense.IsInstallment() {
		deleted, err = uc.expenseRepo.DeleteByOriginalExpense(ctx, *expense.OriginalExpenseID, input.UserID, input.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to delete installment purchase: %w", err)
		}
	} else {
		if err := uc.expenseRepo.Delete(ctx, expense.ID, input.UserID, input.Profile); err != nil {
			return nil, fmt.Errorf("failed to delete expense: %w", err)
		}
		deleted = 1
	}

	cardID := uuid.Nil
	if expense.CardID != nil {
		cardID = *expense.CardID
	}
	_ = uc.changeBus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionExpenses,
		Kind:       adapter.ChangeKindDeleted,
		UserID:     input.UserID,
		Profile:    input.Profile,
		CardID:     cardID,
		OccurredAt: uc.clock.Now(),
	})

	return &DeleteExpenseOutput{DeletedCount: deleted}, nil
}

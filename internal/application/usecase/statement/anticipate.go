package statement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
)

// AnticipateInstallmentsInput represents the input for collapsing future
// installments into the current cycle. NewTotal may be lower than the sum of
// the replaced installments (the anticipation discount).
type AnticipateInstallmentsInput struct {
	UserID           uuid.UUID
	Profile          string
	CurrentExpenseID uuid.UUID
	FutureExpenseIDs []uuid.UUID
	NewTotal         decimal.Decimal
}

// AnticipateInstallmentsOutput represents the result of an anticipation.
type AnticipateInstallmentsOutput struct {
	ReplacementID   uuid.UUID
	DeletedExpenses int
	NewTotal        decimal.Decimal
	AnticipatedAt   time.Time
}

// AnticipateInstallmentsUseCase replaces the current installment of a
// purchase plus a selected set of its future siblings with one standalone
// expense dated at the current installment's date. The store mutation is a
// single transaction: either every deletion and the insertion commit, or
// nothing changes.
type AnticipateInstallmentsUseCase struct {
	expenseRepo adapter.ExpenseRepository
	changeBus   adapter.ChangeBus
	clock       adapter.Clock
}

// NewAnticipateInstallmentsUseCase creates a new AnticipateInstallmentsUseCase instance.
func NewAnticipateInstallmentsUseCase(
	expenseRepo adapter.ExpenseRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *AnticipateInstallmentsUseCase {
	return &AnticipateInstallmentsUseCase{
		expenseRepo: expenseRepo,
		changeBus:   changeBus,
		clock:       clock,
	}
}

// Execute performs the anticipation.
func (uc *AnticipateInstallmentsUseCase) Execute(ctx context.Context, input AnticipateInstallmentsInput) (*AnticipateInstallmentsOutput, error) {
	if len(input.FutureExpenseIDs) == 0 {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeNoInstallmentsSelected,
			"no future installments selected",
			domainerror.ErrNoInstallmentsSelected,
		)
	}

	if !input.NewTotal.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidAnticipationTotal,
			"anticipation total must be positive",
			domainerror.ErrInvalidAnticipationTotal,
		)
	}

	current, err := uc.expenseRepo.FindByID(ctx, input.CurrentExpenseID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	if !current.IsInstallment() {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeNotAnInstallment,
			"expense is not part of a multi-installment purchase",
			domainerror.ErrNotAnInstallment,
		)
	}

	siblings, err := uc.expenseRepo.FindInstallmentSiblings(ctx, *current.OriginalExpenseID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	siblingsByID := make(map[uuid.UUID]*entity.Expense, len(siblings))
	for _, s := range siblings {
		siblingsByID[s.ID] = s
	}

	deleteIDs := make([]uuid.UUID, 0, len(input.FutureExpenseIDs)+1)
	deleteIDs = append(deleteIDs, current.ID)

	for _, id := range input.FutureExpenseIDs {
		selected, ok := siblingsByID[id]
		if !ok {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeInstallmentMismatch,
				"selected installment does not belong to the same purchase",
				domainerror.ErrInstallmentMismatch,
			)
		}
		if !selected.Date.After(current.Date) {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeInstallmentNotFuture,
				"selected installment is not dated after the current one",
				domainerror.ErrInstallmentNotFuture,
			)
		}
		deleteIDs = append(deleteIDs, id)
	}

	// The replacement keeps the current installment's date and metadata but
	// becomes a standalone expense with no installment linkage.
	replacement := entity.NewExpense(
		input.UserID,
		input.Profile,
		current.Description,
		input.NewTotal,
		current.Date,
		current.CardID,
		current.PaymentMethod,
		current.Category,
	)

	if err := uc.expenseRepo.AnticipateInstallments(ctx, deleteIDs, replacement); err != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeAnticipationFailed,
			"anticipation could not be committed",
			err,
		)
	}

	cardID := uuid.Nil
	if current.CardID != nil {
		cardID = *current.CardID
	}

	// Observers recompute from the store; a failed publish only delays the
	// refresh until the next event.
	_ = uc.changeBus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionExpenses,
		Kind:       adapter.ChangeKindUpdated,
		UserID:     input.UserID,
		Profile:    input.Profile,
		CardID:     cardID,
		OccurredAt: uc.clock.Now(),
	})

	return &AnticipateInstallmentsOutput{
		ReplacementID:   replacement.ID,
		DeletedExpenses: len(deleteIDs),
		NewTotal:        input.NewTotal,
		AnticipatedAt:   uc.clock.Now().UTC(),
	}, nil
}

package billpayment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
)

// DeleteBillPaymentInput represents the input for bill payment deletion.
type DeleteBillPaymentInput struct {
	BillPaymentID uuid.UUID
	UserID        uuid.UUID
	Profile       string
}

// DeleteBillPaymentOutput represents the output of bill payment deletion.
type DeleteBillPaymentOutput struct {
	Success bool
}

// DeleteBillPaymentUseCase handles bill payment deletion logic.
type DeleteBillPaymentUseCase struct {
	billPaymentRepo adapter.BillPaymentRepository
	changeBus       adapter.ChangeBus
	clock           adapter.Clock
}

// NewDeleteBillPaymentUseCase creates a new DeleteBillPaymentUseCase instance.
func NewDeleteBillPaymentUseCase(
	billPaymentRepo adapter.BillPaymentRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *DeleteBillPaymentUseCase {
	return &DeleteBillPaymentUseCase{
		billPaymentRepo: billPaymentRepo,
		changeBus:       changeBus,
		clock:           clock,
	}
}

// Execute performs the bill payment deletion (soft delete).
func (uc *DeleteBillPaymentUseCase) Execute(ctx context.Context, input DeleteBillPaymentInput) (*DeleteBillPaymentOutput, error) {
	payment, err := uc.billPaymentRepo.FindByID(ctx, input.BillPaymentID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	if err := uc.billPaymentRepo.Delete(ctx, payment.ID, input.UserID, input.Profile); err != nil {
		return nil, fmt.Errorf("failed to delete bill payment: %w", err)
	}

	_ = uc.changeBus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionBillPayments,
		Kind:       adapter.ChangeKindDeleted,
		UserID:     input.UserID,
		Profile:    input.Profile,
		CardID:     payment.CardID,
		OccurredAt: uc.clock.Now(),
	})

	return &DeleteBillPaymentOutput{Success: true}, nil
}

// Package billpayment contains bill payment and refund use cases.
package billpayment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
)

// CreateBillPaymentInput represents the input for recording a payment or
// refund against a card. The date decides which cycle the record settles.
type CreateBillPaymentInput struct {
	UserID      uuid.UUID
	Profile     string
	CardID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        entity.BillPaymentType
}

// CreateBillPaymentOutput represents the output of recording a bill payment.
type CreateBillPaymentOutput struct {
	BillPayment *entity.BillPayment
}

// CreateBillPaymentUseCase handles bill payment creation logic.
type CreateBillPaymentUseCase struct {
	cardRepo        adapter.CardRepository
	billPaymentRepo adapter.BillPaymentRepository
	changeBus       adapter.ChangeBus
	clock           adapter.Clock
}

// NewCreateBillPaymentUseCase creates a new CreateBillPaymentUseCase instance.
func NewCreateBillPaymentUseCase(
	cardRepo adapter.CardRepository,
	billPaymentRepo adapter.BillPaymentRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *CreateBillPaymentUseCase {
	return &CreateBillPaymentUseCase{
		cardRepo:        cardRepo,
		billPaymentRepo: billPaymentRepo,
		changeBus:       changeBus,
		clock:           clock,
	}
}

// Execute records the payment or refund.
func (uc *CreateBillPaymentUseCase) Execute(ctx context.Context, input CreateBillPaymentInput) (*CreateBillPaymentOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewBillPaymentError(
			domainerror.ErrCodeInvalidBillPaymentType,
			"type must be 'payment' or 'refund'",
			domainerror.ErrInvalidBillPaymentType,
		)
	}

	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewBillPaymentError(
			domainerror.ErrCodeInvalidBillPaymentAmount,
			"bill payment amount must be positive",
			domainerror.ErrInvalidBillPaymentAmount,
		)
	}

	if _, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile); err != nil {
		return nil, err
	}

	payment := entity.NewBillPayment(
		input.UserID,
		input.Profile,
		input.CardID,
		strings.TrimSpace(input.Description),
		input.Amount,
		input.Date,
		input.Type,
	)

	if err := uc.billPaymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create bill payment: %w", err)
	}

	_ = uc.changeBus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionBillPayments,
		Kind:       adapter.ChangeKindCreated,
		UserID:     input.UserID,
		Profile:    input.Profile,
		CardID:     input.CardID,
		OccurredAt: uc.clock.Now(),
	})

	return &CreateBillPaymentOutput{BillPayment: payment}, nil
}

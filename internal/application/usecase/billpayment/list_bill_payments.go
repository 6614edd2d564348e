package billpayment

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// ListBillPaymentsInput represents the input for listing bill payments.
type ListBillPaymentsInput struct {
	UserID  uuid.UUID
	Profile string
	CardID  *uuid.UUID
	Type    *entity.BillPaymentType
}

// ListBillPaymentsOutput represents the output of listing bill payments.
type ListBillPaymentsOutput struct {
	BillPayments []*entity.BillPayment
}

// ListBillPaymentsUseCase handles bill payment listing logic.
type ListBillPaymentsUseCase struct {
	billPaymentRepo adapter.BillPaymentRepository
}

// NewListBillPaymentsUseCase creates a new ListBillPaymentsUseCase instance.
func NewListBillPaymentsUseCase(billPaymentRepo adapter.BillPaymentRepository) *ListBillPaymentsUseCase {
	return &ListBillPaymentsUseCase{
		billPaymentRepo: billPaymentRepo,
	}
}

// Execute lists bill payments newest first.
func (uc *ListBillPaymentsUseCase) Execute(ctx context.Context, input ListBillPaymentsInput) (*ListBillPaymentsOutput, error) {
	payments, err := uc.billPaymentRepo.FindByFilter(ctx, adapter.BillPaymentFilter{
		UserID:  input.UserID,
		Profile: input.Profile,
		CardID:  input.CardID,
		Type:    input.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})

	return &ListBillPaymentsOutput{BillPayments: payments}, nil
}

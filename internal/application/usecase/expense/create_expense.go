// Package expense contains expense-related use cases.
package expense

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

const (
	// MaxDescriptionLength is the maximum allowed length for expense descriptions.
	MaxDescriptionLength = 255
	// MaxInstallments caps how far a purchase can be split.
	MaxInstallments = 48
)

// CreateExpenseInput represents the input for expense creation. Amount is
// the full purchase total; with Installments > 1 it is split into monthly
// records.
type CreateExpenseInput struct {
	UserID        uuid.UUID
	Profile       string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	CardID        *uuid.UUID
	PaymentMethod string
	Category      string
	Installments  int
}

// CreateExpenseOutput represents the output of expense creation. Expenses
// holds every record written, in installment order.
type CreateExpenseOutput struct {
	Expenses []*entity.Expense
}

// CreateExpenseUseCase handles expense creation logic, including the
// installment fan-out: a purchase in N installments becomes N records dated
// one calendar month apart, sharing one OriginalExpenseID, with the total
// split evenly and the last installment absorbing the rounding remainder.
type CreateExpenseUseCase struct {
	cardRepo    adapter.CardRepository
	expenseRepo adapter.ExpenseRepository
	changeBus   adapter.ChangeBus
	clock       adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	cardRepo adapter.CardRepository,
	expenseRepo adapter.ExpenseRepository,
	changeBus adapter.ChangeBus,
	clock adapter.Clock,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		cardRepo:    cardRepo,
		expenseRepo: expenseRepo,
		changeBus:   changeBus,
		clock:       clock,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" || len(description) > MaxDescriptionLength {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeEmptyExpenseDescription,
			fmt.Sprintf("description must be between 1 and %d characters", MaxDescriptionLength),
			domainerror.ErrEmptyExpenseDescription,
		)
	}

	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"expense amount must be positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"expense date is required",
			domainerror.ErrInvalidExpenseDate,
		)
	}

	installments := input.Installments
	if installments == 0 {
		installments = 1
	}
	if installments < 1 || installments > MaxInstallments {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidInstallments,
			fmt.Sprintf("installments must be between 1 and %d", MaxInstallments),
			domainerror.ErrInvalidInstallments,
		)
	}

	// A card reference must resolve within the caller's scope before any
	// record is written against it.
	if input.CardID != nil {
		if _, err := uc.cardRepo.FindByID(ctx, *input.CardID, input.UserID, input.Profile); err != nil {
			return nil, err
		}
	}

	expenses := uc.buildRecords(input, description, installments)

	if err := uc.expenseRepo.CreateBatch(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	cardID := uuid.Nil
	if input.CardID != nil {
		cardID = *input.CardID
	}
	_ = uc.changeBus.Publish(ctx, adapter.ChangeEvent{
		Collection: adapter.CollectionExpenses,
		Kind:       adapter.ChangeKindCreated,
		UserID:     input.UserID,
		Profile:    input.Profile,
		CardID:     cardID,
		OccurredAt: uc.clock.Now(),
	})

	return &CreateExpenseOutput{Expenses: expenses}, nil
}

// buildRecords materializes the stored rows of one purchase.
func (uc *CreateExpenseUseCase) buildRecords(input CreateExpenseInput, description string, installments int) []*entity.Expense {
	if installments == 1 {
		single := entity.NewExpense(
			input.UserID,
			input.Profile,
			description,
			input.Amount,
			input.Date,
			input.CardID,
			input.PaymentMethod,
			input.Category,
		)
		return []*entity.Expense{single}
	}

	count := decimal.NewFromInt(int64(installments))
	perInstallment := input.Amount.Div(count).Round(2)
	lastInstallment := input.Amount.Sub(perInstallment.Mul(count.Sub(decimal.NewFromInt(1))))

	expenses := make([]*entity.Expense, 0, installments)
	var originalID uuid.UUID

	for i := 0; i < installments; i++ {
		amount := perInstallment
		if i == installments-1 {
			amount = lastInstallment
		}

		e := entity.NewExpense(
			input.UserID,
			input.Profile,
			description,
			amount,
			input.Date.AddDate(0, i, 0),
			input.CardID,
			input.PaymentMethod,
			input.Category,
		)
		if i == 0 {
			originalID = e.ID
		}
		linkID := originalID
		e.OriginalExpenseID = &linkID
		e.Installments = installments
		e.CurrentInstallment = i + 1
		expenses = append(expenses, e)
	}

	return expenses
}

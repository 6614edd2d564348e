package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for querying expenses.
// StartDate/EndDate are inclusive bounds on the expense date.
type ExpenseFilter struct {
	UserID    uuid.UUID
	Profile   string
	CardID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// CreateBatch creates one or more expenses atomically. Installment
	// fan-out writes all N records in a single transaction.
	CreateBatch(ctx context.Context, expenses []*entity.Expense) error

	// FindByID retrieves an expense by ID with ownership check.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, ordered by date.
	FindByFilter(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// SumByFilter returns the sum of expense amounts matching the filter.
	SumByFilter(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)

	// FindInstallmentSiblings retrieves all expenses sharing the given
	// original purchase, ordered by date.
	FindInstallmentSiblings(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) ([]*entity.Expense, error)

	// FindOldestExpenseDate returns the date of the oldest expense recorded
	// for a card, or nil when the card has no expenses.
	FindOldestExpenseDate(ctx context.Context, userID uuid.UUID, profile string, cardID uuid.UUID) (*time.Time, error)

	// Delete soft-deletes an expense from the database.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error

	// DeleteByOriginalExpense soft-deletes all installments of a purchase.
	// Returns the count of deleted expenses.
	DeleteByOriginalExpense(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) (int64, error)

	// AnticipateInstallments deletes the given installment records and
	// inserts the replacement expense in one transaction. Either all
	// deletions and the insertion succeed, or none do.
	AnticipateInstallments(ctx context.Context, deleteIDs []uuid.UUID, replacement *entity.Expense) error
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// BillPaymentFilter defines filter options for querying bill payments.
// AfterDate is an exclusive lower bound; EndDate is inclusive. The exclusive
// lower bound exists because payments settle the window (previousCycleEnd,
// cycleEnd], not the calendar month they fall in.
type BillPaymentFilter struct {
	UserID    uuid.UUID
	Profile   string
	CardID    *uuid.UUID
	Type      *entity.BillPaymentType
	AfterDate *time.Time
	EndDate   *time.Time
}

// BillPaymentRepository defines the interface for bill payment persistence operations.
type BillPaymentRepository interface {
	// Create creates a new bill payment in the database.
	Create(ctx context.Context, payment *entity.BillPayment) error

	// FindByID retrieves a bill payment by ID with ownership check.
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.BillPayment, error)

	// FindByFilter retrieves bill payments matching the filter, ordered by date.
	FindByFilter(ctx context.Context, filter BillPaymentFilter) ([]*entity.BillPayment, error)

	// SumByFilter returns the sum of amounts matching the filter.
	SumByFilter(ctx context.Context, filter BillPaymentFilter) (decimal.Decimal, error)

	// Delete soft-deletes a bill payment from the database.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error
}

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

// GetStatementInput represents the input for computing one statement.
type GetStatementInput struct {
	UserID  uuid.UUID
	Profile string
	CardID  uuid.UUID
	Year    int
	Month   time.Month
}

// GetStatementUseCase computes the statement of one (card, cycle) pair.
// Every execution queries the record streams fresh; no intermediate state
// survives the computation.
type GetStatementUseCase struct {
	cardRepo        adapter.CardRepository
	expenseRepo     adapter.ExpenseRepository
	billPaymentRepo adapter.BillPaymentRepository
	clock           adapter.Clock
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(
	cardRepo adapter.CardRepository,
	expenseRepo adapter.ExpenseRepository,
	billPaymentRepo adapter.BillPaymentRepository,
	clock adapter.Clock,
) *GetStatementUseCase {
	return &GetStatementUseCase{
		cardRepo:        cardRepo,
		expenseRepo:     expenseRepo,
		billPaymentRepo: billPaymentRepo,
		clock:           clock,
	}
}

// Execute computes the full statement for the requested cycle.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*entity.Statement, error) {
	if input.Month < time.January || input.Month > time.December {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidCycleMonth,
			"cycle month must be between 1 and 12",
			domainerror.ErrInvalidCycleMonth,
		)
	}

	card, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	return uc.computeForCard(ctx, card, input.Year, input.Month)
}

// computeForCard aggregates one cycle for an already-loaded card. The cycle
// scanner calls this directly to avoid re-fetching the card per cycle.
func (uc *GetStatementUseCase) computeForCard(ctx context.Context, card *entity.Card, year int, month time.Month) (*entity.Statement, error) {
	if !card.HasValidCycleConfig() {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeIncompleteCardConfig,
			"card has no valid closing/due day configuration",
			domainerror.ErrIncompleteCardConfig,
		)
	}

	period := ComputeCyclePeriod(year, month, card.ClosingDay, card.DueDay)

	// The previous cycle's closing date anchors the payment window: a
	// payment made any time in (previousCycleEnd, cycleEnd] settles this
	// cycle, even when it lands in a different calendar month than the
	// purchases it covers.
	prevMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevPeriod := ComputeCyclePeriod(prevMonth.Year(), prevMonth.Month(), card.ClosingDay, card.DueDay)

	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    card.UserID,
		Profile:   card.Profile,
		CardID:    &card.ID,
		StartDate: &period.CycleStart,
		EndDate:   &period.CycleEnd,
	})
	if err != nil {
		return nil, statementUnavailable(err)
	}

	refundType := entity.BillPaymentTypeRefund
	refunds, err := uc.billPaymentRepo.FindByFilter(ctx, adapter.BillPaymentFilter{
		UserID:    card.UserID,
		Profile:   card.Profile,
		CardID:    &card.ID,
		Type:      &refundType,
		AfterDate: beforeStart(period.CycleStart),
		EndDate:   &period.CycleEnd,
	})
	if err != nil {
		return nil, statementUnavailable(err)
	}

	paymentType := entity.BillPaymentTypePayment
	payments, err := uc.billPaymentRepo.FindByFilter(ctx, adapter.BillPaymentFilter{
		UserID:    card.UserID,
		Profile:   card.Profile,
		CardID:    &card.ID,
		Type:      &paymentType,
		AfterDate: &prevPeriod.CycleEnd,
		EndDate:   &period.CycleEnd,
	})
	if err != nil {
		return nil, statementUnavailable(err)
	}

	billedTotal := decimal.Zero
	for _, e := range expenses {
		billedTotal = billedTotal.Add(e.Amount)
	}

	refundTotal := decimal.Zero
	for _, r := range refunds {
		refundTotal = refundTotal.Add(r.Amount)
	}

	paidTotal := decimal.Zero
	for _, p := range payments {
		paidTotal = paidTotal.Add(p.Amount)
	}

	netTotal := billedTotal.Sub(refundTotal)
	if netTotal.IsNegative() {
		netTotal = decimal.Zero
	}

	now := uc.clock.Now()
	isCurrent := !now.Before(period.CycleStart) && !now.After(period.CycleEnd)
	isFuture := now.Before(period.CycleStart)

	return &entity.Statement{
		CardID:      card.ID,
		Year:        year,
		Month:       month,
		CycleStart:  period.CycleStart,
		CycleEnd:    period.CycleEnd,
		DueDate:     period.DueDate,
		BilledTotal: billedTotal,
		RefundTotal: refundTotal,
		PaidTotal:   paidTotal,
		NetTotal:    netTotal,
		Status:      ClassifyStatus(netTotal, paidTotal, period.DueDate, isCurrent, isFuture, now),
		Expenses:    expenses,
		Payments:    payments,
		Refunds:     refunds,
	}, nil
}

// beforeStart converts the inclusive cycle start into the exclusive lower
// bound the bill-payment filter expects.
func beforeStart(cycleStart time.Time) *time.Time {
	t := cycleStart.Add(-time.Nanosecond)
	return &t
}

// statementUnavailable wraps a record-stream failure in the "could not load
// statement" condition surfaced to callers. The engine does not retry.
func statementUnavailable(err error) error {
	return domainerror.NewStatementError(
		domainerror.ErrCodeStatementUnavailable,
		"could not load statement",
		err,
	)
}

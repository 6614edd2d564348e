package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// ClassifyStatus maps the billed/paid totals of one cycle to a payment
// status. billed must already be net of refunds; the outstanding balance is
// billed − paid.
//
// Ordering is monotone in paid: once paid reaches billed the label is paid
// (or credit when overpaid) and further payment only deepens the credit. A
// cycle that has closed but is neither settled nor past due stays open; the
// isCurrentCycle/isFutureCycle flags only soften the severity while charges
// are still accumulating.
func ClassifyStatus(
	billed decimal.Decimal,
	paid decimal.Decimal,
	dueDate time.Time,
	isCurrentCycle bool,
	isFutureCycle bool,
	now time.Time,
) entity.StatementStatus {
	if paid.GreaterThan(billed) {
		return entity.StatementStatus{
			Label:     entity.StatementLabelCredit,
			Severity:  entity.SeverityInfo,
			Remaining: decimal.Zero,
			Overpaid:  paid.Sub(billed),
		}
	}

	if paid.Equal(billed) {
		// An empty accumulating cycle is open, not settled.
		if billed.IsZero() && (isCurrentCycle || isFutureCycle) {
			return entity.StatementStatus{
				Label:     entity.StatementLabelOpen,
				Severity:  entity.SeverityOK,
				Remaining: decimal.Zero,
				Overpaid:  decimal.Zero,
			}
		}
		return entity.StatementStatus{
			Label:     entity.StatementLabelPaid,
			Severity:  entity.SeverityOK,
			Remaining: decimal.Zero,
			Overpaid:  decimal.Zero,
		}
	}

	remaining := billed.Sub(paid)

	if now.After(dueDate) {
		return entity.StatementStatus{
			Label:     entity.StatementLabelOverdue,
			Severity:  entity.SeverityDanger,
			Remaining: remaining,
			Overpaid:  decimal.Zero,
		}
	}

	severity := entity.SeverityWarning
	switch {
	case isCurrentCycle || isFutureCycle:
		// Still accumulating charges; nothing is expected yet.
		severity = entity.SeverityOK
	case paid.GreaterThan(decimal.Zero):
		severity = entity.SeverityInfo
	}

	return entity.StatementStatus{
		Label:     entity.StatementLabelOpen,
		Severity:  severity,
		Remaining: remaining,
		Overpaid:  decimal.Zero,
	}
}

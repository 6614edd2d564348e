package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementLabel is the payment state of a billing cycle.
type StatementLabel string

const (
	// StatementLabelPaid means the net billed total is fully settled.
	StatementLabelPaid StatementLabel = "paid"
	// StatementLabelCredit means payments exceed the net billed total.
	StatementLabelCredit StatementLabel = "credit"
	// StatementLabelOpen means there is an unsettled balance and the due
	// date has not passed (or the cycle is still accumulating charges).
	StatementLabelOpen StatementLabel = "open"
	// StatementLabelOverdue means the due date passed with balance unpaid.
	StatementLabelOverdue StatementLabel = "overdue"
)

// StatementSeverity is the urgency class UI collaborators render with.
type StatementSeverity string

const (
	SeverityOK      StatementSeverity = "ok"
	SeverityInfo    StatementSeverity = "info"
	SeverityWarning StatementSeverity = "warning"
	SeverityDanger  StatementSeverity = "danger"
)

// StatementStatus is the classified payment status of one cycle.
// Remaining carries the outstanding balance for open/overdue statements;
// Overpaid carries the credit amount when payments exceed the billed total.
type StatementStatus struct {
	Label     StatementLabel
	Severity  StatementSeverity
	Remaining decimal.Decimal
	Overpaid  decimal.Decimal
}

// Statement is the aggregated view of one card billing cycle. It is derived
// on demand from the expense and bill-payment records and never persisted.
type Statement struct {
	CardID      uuid.UUID
	Year        int
	Month       time.Month
	CycleStart  time.Time
	CycleEnd    time.Time
	DueDate     time.Time
	BilledTotal decimal.Decimal
	RefundTotal decimal.Decimal
	PaidTotal   decimal.Decimal
	NetTotal    decimal.Decimal
	Status      StatementStatus
	Expenses    []*Expense
	Payments    []*BillPayment
	Refunds     []*BillPayment
}

// StatementSummary is one row of the statement-picker list.
type StatementSummary struct {
	Year        int
	Month       time.Month
	CycleEnd    time.Time
	DueDate     time.Time
	BilledTotal decimal.Decimal
	Status      StatementStatus
}

// AvailableCredit is the card limit usage snapshot.
type AvailableCredit struct {
	CardID          uuid.UUID
	Limit           decimal.Decimal
	CurrentCycleNet decimal.Decimal
	FutureBilled    decimal.Decimal
	CurrentPaid     decimal.Decimal
	Available       decimal.Decimal
}

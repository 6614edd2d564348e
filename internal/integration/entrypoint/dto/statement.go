package dto

import (
	"time"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// StatementStatusResponse represents the classified payment status of a
// cycle in API responses.
type StatementStatusResponse struct {
	Label     string `json:"label"`
	Severity  string `json:"severity"`
	Remaining string `json:"remaining"`
	Overpaid  string `json:"overpaid"`
}

// StatementResponse represents one card billing cycle in API responses.
type StatementResponse struct {
	CardID      string                  `json:"card_id"`
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	CycleStart  time.Time               `json:"cycle_start"`
	CycleEnd    time.Time               `json:"cycle_end"`
	DueDate     time.Time               `json:"due_date"`
	BilledTotal string                  `json:"billed_total"`
	RefundTotal string                  `json:"refund_total"`
	PaidTotal   string                  `json:"paid_total"`
	NetTotal    string                  `json:"net_total"`
	Status      StatementStatusResponse `json:"status"`
	Expenses    []ExpenseResponse       `json:"expenses"`
	Payments    []BillPaymentResponse   `json:"payments"`
	Refunds     []BillPaymentResponse   `json:"refunds"`
}

// StatementSummaryResponse represents one row of the statement-picker list.
type StatementSummaryResponse struct {
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	CycleEnd    time.Time               `json:"cycle_end"`
	DueDate     time.Time               `json:"due_date"`
	BilledTotal string                  `json:"billed_total"`
	Status      StatementStatusResponse `json:"status"`
}

// StatementListResponse represents the response for the historical cycle scan.
type StatementListResponse struct {
	Statements []StatementSummaryResponse `json:"statements"`
}

// AvailableCreditResponse represents the card limit usage snapshot.
type AvailableCreditResponse struct {
	CardID          string `json:"card_id"`
	Limit           string `json:"limit"`
	CurrentCycleNet string `json:"current_cycle_net"`
	FutureBilled    string `json:"future_billed"`
	CurrentPaid     string `json:"current_paid"`
	Available       string `json:"available"`
}

// AnticipateInstallmentsRequest represents the request body for collapsing
// future installments into the current cycle.
type AnticipateInstallmentsRequest struct {
	CurrentExpenseID string   `json:"current_expense_id" binding:"required"`
	FutureExpenseIDs []string `json:"future_expense_ids" binding:"required,min=1"`
	NewTotal         float64  `json:"new_total" binding:"required"`
}

// AnticipateInstallmentsResponse represents the result of an anticipation.
type AnticipateInstallmentsResponse struct {
	ReplacementID   string    `json:"replacement_id"`
	DeletedExpenses int       `json:"deleted_expenses"`
	NewTotal        string    `json:"new_total"`
	AnticipatedAt   time.Time `json:"anticipated_at"`
}

// ToStatementStatusResponse converts a StatementStatus to a response DTO.
func ToStatementStatusResponse(status entity.StatementStatus) StatementStatusResponse {
	return StatementStatusResponse{
		Label:     string(status.Label),
		Severity:  string(status.Severity),
		Remaining: status.Remaining.String(),
		Overpaid:  status.Overpaid.String(),
	}
}

// ToStatementResponse converts a Statement entity to a response DTO.
func ToStatementResponse(stmt *entity.Statement) StatementResponse {
	expenses := make([]ExpenseResponse, len(stmt.Expenses))
	for i, e := range stmt.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}

	payments := make([]BillPaymentResponse, len(stmt.Payments))
	for i, p := range stmt.Payments {
		payments[i] = ToBillPaymentResponse(p)
	}

	refunds := make([]BillPaymentResponse, len(stmt.Refunds))
	for i, r := range stmt.Refunds {
		refunds[i] = ToBillPaymentResponse(r)
	}

	return StatementResponse{
		CardID:      stmt.CardID.String(),
		Year:        stmt.Year,
		Month:       int(stmt.Month),
		CycleStart:  stmt.CycleStart,
		CycleEnd:    stmt.CycleEnd,
		DueDate:     stmt.DueDate,
		BilledTotal: stmt.BilledTotal.String(),
		RefundTotal: stmt.RefundTotal.String(),
		PaidTotal:   stmt.PaidTotal.String(),
		NetTotal:    stmt.NetTotal.String(),
		Status:      ToStatementStatusResponse(stmt.Status),
		Expenses:    expenses,
		Payments:    payments,
		Refunds:     refunds,
	}
}

// ToStatementSummaryResponse converts a StatementSummary to a response DTO.
func ToStatementSummaryResponse(summary *entity.StatementSummary) StatementSummaryResponse {
	return StatementSummaryResponse{
		Year:        summary.Year,
		Month:       int(summary.Month),
		CycleEnd:    summary.CycleEnd,
		DueDate:     summary.DueDate,
		BilledTotal: summary.BilledTotal.String(),
		Status:      ToStatementStatusResponse(summary.Status),
	}
}

// ToAvailableCreditResponse converts an AvailableCredit to a response DTO.
func ToAvailableCreditResponse(credit *entity.AvailableCredit) AvailableCreditResponse {
	return AvailableCreditResponse{
		CardID:          credit.CardID.String(),
		Limit:           credit.Limit.String(),
		CurrentCycleNet: credit.CurrentCycleNet.String(),
		FutureBilled:    credit.FutureBilled.String(),
		CurrentPaid:     credit.CurrentPaid.String(),
		Available:       credit.Available.String(),
	}
}

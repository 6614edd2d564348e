package dto

import (
	"time"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
// Amount is the full purchase total; with installments > 1 it is split into
// monthly records server side.
type CreateExpenseRequest struct {
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description" binding:"required,min=1,max=255"`
	Amount        float64 `json:"amount" binding:"required"`
	CardID        *string `json:"card_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Category      string  `json:"category,omitempty"`
	Installments  int     `json:"installments,omitempty" binding:"omitempty,min=1,max=48"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID                 string    `json:"id"`
	Date               string    `json:"date"`
	Description        string    `json:"description"`
	Amount             string    `json:"amount"`
	CardID             *string   `json:"card_id,omitempty"`
	PaymentMethod      string    `json:"payment_method,omitempty"`
	Category           string    `json:"category,omitempty"`
	Installments       int       `json:"installments"`
	CurrentInstallment int       `json:"current_installment"`
	OriginalExpenseID  *string   `json:"original_expense_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// DeleteExpenseResponse represents the response for expense deletion.
type DeleteExpenseResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	response := ExpenseResponse{
		ID:                 e.ID.String(),
		Date:               e.Date.Format("2006-01-02"),
		Description:        e.Description,
		Amount:             e.Amount.String(),
		PaymentMethod:      e.PaymentMethod,
		Category:           e.Category,
		Installments:       e.Installments,
		CurrentInstallment: e.CurrentInstallment,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}

	if e.CardID != nil {
		cardID := e.CardID.String()
		response.CardID = &cardID
	}
	if e.OriginalExpenseID != nil {
		originalID := e.OriginalExpenseID.String()
		response.OriginalExpenseID = &originalID
	}

	return response
}

// ToExpenseListResponse converts a slice of Expense entities to a list DTO.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{Expenses: items}
}

package dto

import (
	"time"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// CreateBillPaymentRequest represents the request body for recording a
// payment or refund against a card.
type CreateBillPaymentRequest struct {
	CardID      string  `json:"card_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Amount      float64 `json:"amount" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=payment refund"`
}

// BillPaymentResponse represents a single bill payment in API responses.
type BillPaymentResponse struct {
	ID          string    `json:"id"`
	CardID      string    `json:"card_id"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BillPaymentListResponse represents the response for listing bill payments.
type BillPaymentListResponse struct {
	BillPayments []BillPaymentResponse `json:"bill_payments"`
}

// ToBillPaymentResponse converts a BillPayment entity to a response DTO.
func ToBillPaymentResponse(p *entity.BillPayment) BillPaymentResponse {
	return BillPaymentResponse{
		ID:          p.ID.String(),
		CardID:      p.CardID.String(),
		Date:        p.Date.Format("2006-01-02"),
		Description: p.Description,
		Amount:      p.Amount.String(),
		Type:        string(p.Type),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToBillPaymentListResponse converts a slice of BillPayment entities to a
// list DTO.
func ToBillPaymentListResponse(payments []*entity.BillPayment) BillPaymentListResponse {
	items := make([]BillPaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = ToBillPaymentResponse(p)
	}
	return BillPaymentListResponse{BillPayments: items}
}

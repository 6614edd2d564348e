package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillPaymentType distinguishes money applied against the outstanding
// balance (payment) from money returned to the cardholder (refund).
type BillPaymentType string

const (
	BillPaymentTypePayment BillPaymentType = "payment"
	BillPaymentTypeRefund  BillPaymentType = "refund"
)

// IsValid reports whether the type is one of the known values.
func (t BillPaymentType) IsValid() bool {
	return t == BillPaymentTypePayment || t == BillPaymentTypeRefund
}

// BillPayment represents money movement against a card's statement.
// Payments reduce the outstanding balance; refunds reduce the billed total
// of the cycle their date falls into.
type BillPayment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Profile     string
	CardID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        BillPaymentType
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewBillPayment creates a new BillPayment entity.
func NewBillPayment(
	userID uuid.UUID,
	profile string,
	cardID uuid.UUID,
	description string,
	amount decimal.Decimal,
	date time.Time,
	paymentType BillPaymentType,
) *BillPayment {
	now := time.Now().UTC()

	return &BillPayment{
		ID:          uuid.New(),
		UserID:      userID,
		Profile:     profile,
		CardID:      cardID,
		Description: description,
		Amount:      amount,
		Date:        date,
		Type:        paymentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

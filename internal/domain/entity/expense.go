package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single charge on a card.
//
// A purchase split into N installments is stored as N independent Expense
// records, dated one calendar month apart, each carrying amount = total/N and
// sharing the same OriginalExpenseID. CardID is the normalized card
// reference; PaymentMethod is only a display snapshot taken at purchase time
// (e.g. "Cartão: Nubank") and is never used for matching.
type Expense struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Profile            string
	Description        string
	Amount             decimal.Decimal
	Date               time.Time
	CardID             *uuid.UUID
	PaymentMethod      string
	Category           string
	Installments       int
	CurrentInstallment int
	OriginalExpenseID  *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	profile string,
	description string,
	amount decimal.Decimal,
	date time.Time,
	cardID *uuid.UUID,
	paymentMethod string,
	category string,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:                 uuid.New(),
		UserID:             userID,
		Profile:            profile,
		Description:        description,
		Amount:             amount,
		Date:               date,
		CardID:             cardID,
		PaymentMethod:      paymentMethod,
		Category:           category,
		Installments:       1,
		CurrentInstallment: 1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsInstallment reports whether the expense is part of a multi-installment
// purchase.
func (e *Expense) IsInstallment() bool {
	return e.OriginalExpenseID != nil && e.Installments > 1
}

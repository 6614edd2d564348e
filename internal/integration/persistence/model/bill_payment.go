package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// BillPaymentModel represents the bill_payments table in the database.
type BillPaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_bill_payments_owner"`
	Profile     string          `gorm:"type:varchar(50);not null;index:idx_bill_payments_owner"`
	CardID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"type:timestamp;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`

	// Relationship (not loaded by default, use Preload)
	Card *CardModel `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for the BillPaymentModel.
func (BillPaymentModel) TableName() string {
	return "bill_payments"
}

// ToEntity converts a BillPaymentModel to a domain BillPayment entity.
func (m *BillPaymentModel) ToEntity() *entity.BillPayment {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.BillPayment{
		ID:          m.ID,
		UserID:      m.UserID,
		Profile:     m.Profile,
		CardID:      m.CardID,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Type:        entity.BillPaymentType(m.Type),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// BillPaymentFromEntity creates a BillPaymentModel from a domain BillPayment entity.
func BillPaymentFromEntity(payment *entity.BillPayment) *BillPaymentModel {
	var deletedAt gorm.DeletedAt
	if payment.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *payment.DeletedAt, Valid: true}
	}

	return &BillPaymentModel{
		ID:          payment.ID,
		UserID:      payment.UserID,
		Profile:     payment.Profile,
		CardID:      payment.CardID,
		Description: payment.Description,
		Amount:      payment.Amount,
		Date:        payment.Date,
		Type:        string(payment.Type),
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

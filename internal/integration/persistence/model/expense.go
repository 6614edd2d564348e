package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_owner"`
	Profile            string          `gorm:"type:varchar(50);not null;index:idx_expenses_owner"`
	Description        string          `gorm:"type:varchar(255);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date               time.Time       `gorm:"type:timestamp;not null;index"`
	CardID             *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod      string          `gorm:"type:varchar(100)"`
	Category           string          `gorm:"type:varchar(100)"`
	Installments       int             `gorm:"type:integer;not null;default:1"`
	CurrentInstallment int             `gorm:"type:integer;not null;default:1"`
	OriginalExpenseID  *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`

	// Relationship (not loaded by default, use Preload)
	Card *CardModel `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Expense{
		ID:                 m.ID,
		UserID:             m.UserID,
		Profile:            m.Profile,
		Description:        m.Description,
		Amount:             m.Amount,
		Date:               m.Date,
		CardID:             m.CardID,
		PaymentMethod:      m.PaymentMethod,
		Category:           m.Category,
		Installments:       m.Installments,
		CurrentInstallment: m.CurrentInstallment,
		OriginalExpenseID:  m.OriginalExpenseID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	var deletedAt gorm.DeletedAt
	if expense.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *expense.DeletedAt, Valid: true}
	}

	return &ExpenseModel{
		ID:                 expense.ID,
		UserID:             expense.UserID,
		Profile:            expense.Profile,
		Description:        expense.Description,
		Amount:             expense.Amount,
		Date:               expense.Date,
		CardID:             expense.CardID,
		PaymentMethod:      expense.PaymentMethod,
		Category:           expense.Category,
		Installments:       expense.Installments,
		CurrentInstallment: expense.CurrentInstallment,
		OriginalExpenseID:  expense.OriginalExpenseID,
		CreatedAt:          expense.CreatedAt,
		UpdatedAt:          expense.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

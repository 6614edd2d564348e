// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// CardModel represents the cards table in the database.
type CardModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_cards_owner"`
	Profile    string          `gorm:"type:varchar(50);not null;index:idx_cards_owner"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Limit      decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2);not null"`
	ClosingDay int             `gorm:"type:integer;not null"`
	DueDay     int             `gorm:"type:integer;not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Card{
		ID:         m.ID,
		UserID:     m.UserID,
		Profile:    m.Profile,
		Name:       m.Name,
		Limit:      m.Limit,
		ClosingDay: m.ClosingDay,
		DueDay:     m.DueDay,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	var deletedAt gorm.DeletedAt
	if card.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *card.DeletedAt, Valid: true}
	}

	return &CardModel{
		ID:         card.ID,
		UserID:     card.UserID,
		Profile:    card.Profile,
		Name:       card.Name,
		Limit:      card.Limit,
		ClosingDay: card.ClosingDay,
		DueDay:     card.DueDay,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

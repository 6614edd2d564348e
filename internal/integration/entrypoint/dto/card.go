package dto

import (
	"time"

	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// CreateCardRequest represents the request body for card creation.
type CreateCardRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=100"`
	Limit      float64 `json:"limit"`
	ClosingDay int     `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay     int     `json:"due_day" binding:"required,min=1,max=31"`
}

// UpdateCardRequest represents the request body for card update. Every field
// is replaced, so all of them are required.
type UpdateCardRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=100"`
	Limit      float64 `json:"limit"`
	ClosingDay int     `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay     int     `json:"due_day" binding:"required,min=1,max=31"`
}

// CardResponse represents a single card in API responses.
type CardResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Limit      string    `json:"limit"`
	ClosingDay int       `json:"closing_day"`
	DueDay     int       `json:"due_day"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CardListResponse represents the response for listing cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// ToCardResponse converts a Card entity to a CardResponse DTO.
func ToCardResponse(card *entity.Card) CardResponse {
	return CardResponse{
		ID:         card.ID.String(),
		Name:       card.Name,
		Limit:      card.Limit.String(),
		ClosingDay: card.ClosingDay,
		DueDay:     card.DueDay,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}
}

// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/persistence/model"
)

// cardRepository implements the adapter.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) adapter.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create creates a new card in the database.
func (r *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	cardModel := model.CardFromEntity(card)
	result := r.db.WithContext(ctx).Create(cardModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a card by ID scoped to its owner.
func (r *cardRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Card, error) {
	var cardModel model.CardModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByOwner retrieves all cards of one user+profile pair.
func (r *cardRepository) FindByOwner(ctx context.Context, userID uuid.UUID, profile string) ([]*entity.Card, error) {
	var cardModels []model.CardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND profile = ?", userID, profile).
		Order("name ASC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.Card, len(cardModels))
	for i, cm := range cardModels {
		cards[i] = cm.ToEntity()
	}
	return cards, nil
}

// Update updates an existing card in the database.
func (r *cardRepository) Update(ctx context.Context, card *entity.Card) error {
	cardModel := model.CardFromEntity(card)
	result := r.db.WithContext(ctx).Save(cardModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a card scoped to its owner.
func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		Delete(&model.CardModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCardNotFound
	}
	return nil
}

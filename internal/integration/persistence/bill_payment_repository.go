package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/persistence/model"
)

// billPaymentRepository implements the adapter.BillPaymentRepository interface.
type billPaymentRepository struct {
	db *gorm.DB
}

// NewBillPaymentRepository creates a new bill payment repository instance.
func NewBillPaymentRepository(db *gorm.DB) adapter.BillPaymentRepository {
	return &billPaymentRepository{
		db: db,
	}
}

// Create creates a new bill payment in the database.
func (r *billPaymentRepository) Create(ctx context.Context, payment *entity.BillPayment) error {
	paymentModel := model.BillPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a bill payment by ID scoped to its owner.
func (r *billPaymentRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.BillPayment, error) {
	var paymentModel model.BillPaymentModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByFilter retrieves bill payments matching the filter, oldest first.
// AfterDate is an exclusive lower bound; EndDate is inclusive. The shifted
// payment window of a cycle maps directly onto this pair.
func (r *billPaymentRepository) FindByFilter(ctx context.Context, filter adapter.BillPaymentFilter) ([]*entity.BillPayment, error) {
	var paymentModels []model.BillPaymentModel
	result := applyBillPaymentFilter(r.db.WithContext(ctx), filter).
		Order("date ASC, created_at ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.BillPayment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// SumByFilter sums the amounts of bill payments matching the filter.
func (r *billPaymentRepository) SumByFilter(ctx context.Context, filter adapter.BillPaymentFilter) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	result := applyBillPaymentFilter(r.db.WithContext(ctx).Model(&model.BillPaymentModel{}), filter).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&sumResult)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return sumResult.Total, nil
}

// Delete soft-deletes a bill payment scoped to its owner.
func (r *billPaymentRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		Delete(&model.BillPaymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBillPaymentNotFound
	}
	return nil
}

// applyBillPaymentFilter translates the adapter filter into query conditions.
func applyBillPaymentFilter(query *gorm.DB, filter adapter.BillPaymentFilter) *gorm.DB {
	query = query.Where("user_id = ? AND profile = ?", filter.UserID, filter.Profile)

	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.AfterDate != nil {
		query = query.Where("date > ?", *filter.AfterDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	return query
}

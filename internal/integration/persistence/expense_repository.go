package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// CreateBatch creates the records of one purchase atomically. Either every
// installment is written or none is.
func (r *expenseRepository) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, expense := range expenses {
			expenseModel := model.ExpenseFromEntity(expense)
			if err := tx.Create(expenseModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves an expense by ID scoped to its owner.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByFilter retrieves expenses matching the filter, oldest first.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := applyExpenseFilter(r.db.WithContext(ctx), filter).
		Order("date ASC, created_at ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses, nil
}

// SumByFilter sums the amounts of expenses matching the filter.
func (r *expenseRepository) SumByFilter(ctx context.Context, filter adapter.ExpenseFilter) (decimal.Decimal, error) {
	var sumResult struct {
		Total decimal.Decimal
	}
	result := applyExpenseFilter(r.db.WithContext(ctx).Model(&model.ExpenseModel{}), filter).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&sumResult)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return sumResult.Total, nil
}

// FindInstallmentSiblings retrieves every record of one installment purchase.
func (r *expenseRepository) FindInstallmentSiblings(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("original_expense_id = ? AND user_id = ? AND profile = ?", originalExpenseID, userID, profile).
		Order("current_installment ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses, nil
}

// FindOldestExpenseDate returns the date of the card's oldest expense, or nil
// when the card has none. The cycle scanner uses it to bound its walk.
func (r *expenseRepository) FindOldestExpenseDate(ctx context.Context, userID uuid.UUID, profile string, cardID uuid.UUID) (*time.Time, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND profile = ? AND card_id = ?", userID, profile, cardID).
		Order("date ASC").
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &expenseModel.Date, nil
}

// Delete soft-deletes an expense scoped to its owner.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND profile = ?", id, userID, profile).
		Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// DeleteByOriginalExpense soft-deletes every record of one purchase.
func (r *expenseRepository) DeleteByOriginalExpense(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) (int64, error) {
	var deletedCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("original_expense_id = ? AND user_id = ? AND profile = ?", originalExpenseID, userID, profile).
			Delete(&model.ExpenseModel{})
		if result.Error != nil {
			return result.Error
		}
		deletedCount = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedCount, nil
}

// AnticipateInstallments removes the listed installment records and writes
// the replacement in one transaction. The deletions are hard deletes so the
// replaced installments cannot resurface in any cycle.
func (r *expenseRepository) AnticipateInstallments(ctx context.Context, deleteIDs []uuid.UUID, replacement *entity.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("id IN ? AND user_id = ? AND profile = ?", deleteIDs, replacement.UserID, replacement.Profile).
			Delete(&model.ExpenseModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(deleteIDs)) {
			return domainerror.ErrExpenseNotFound
		}

		replacementModel := model.ExpenseFromEntity(replacement)
		return tx.Create(replacementModel).Error
	})
}

// applyExpenseFilter translates the adapter filter into query conditions.
func applyExpenseFilter(query *gorm.DB, filter adapter.ExpenseFilter) *gorm.DB {
	query = query.Where("user_id = ? AND profile = ?", filter.UserID, filter.Profile)

	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	return query
}

package statement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// DefaultMaxLookbackCycles bounds the historical scan when the card's
// transaction history does not end it earlier.
const DefaultMaxLookbackCycles = 12

// ListStatementsInput represents the input for the historical cycle scan.
// MaxCycles falls back to DefaultMaxLookbackCycles when zero.
type ListStatementsInput struct {
	UserID    uuid.UUID
	Profile   string
	CardID    uuid.UUID
	MaxCycles int
}

// ListStatementsUseCase enumerates a card's historical statements, most
// recent first, for the statement-picker list. Each cycle is aggregated in
// one-shot mode; cycles with nothing billed are omitted, and the scan stops
// once it has walked past the card's oldest recorded expense.
type ListStatementsUseCase struct {
	getStatement *GetStatementUseCase
	cardRepo     adapter.CardRepository
	expenseRepo  adapter.ExpenseRepository
	clock        adapter.Clock
}

// NewListStatementsUseCase creates a new ListStatementsUseCase instance.
func NewListStatementsUseCase(
	getStatement *GetStatementUseCase,
	cardRepo adapter.CardRepository,
	expenseRepo adapter.ExpenseRepository,
	clock adapter.Clock,
) *ListStatementsUseCase {
	return &ListStatementsUseCase{
		getStatement: getStatement,
		cardRepo:     cardRepo,
		expenseRepo:  expenseRepo,
		clock:        clock,
	}
}

// Execute scans backward from the current calendar month.
func (uc *ListStatementsUseCase) Execute(ctx context.Context, input ListStatementsInput) ([]*entity.StatementSummary, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.CardID, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	oldest, err := uc.expenseRepo.FindOldestExpenseDate(ctx, input.UserID, input.Profile, input.CardID)
	if err != nil {
		return nil, statementUnavailable(err)
	}
	if oldest == nil {
		// No expenses were ever recorded for this card.
		return []*entity.StatementSummary{}, nil
	}

	maxCycles := input.MaxCycles
	if maxCycles <= 0 {
		maxCycles = DefaultMaxLookbackCycles
	}

	now := uc.clock.Now()
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summaries := make([]*entity.StatementSummary, 0, maxCycles)
	for i := 0; i < maxCycles; i++ {
		year, month := cursor.Year(), cursor.Month()

		stmt, err := uc.getStatement.computeForCard(ctx, card, year, month)
		if err != nil {
			return nil, err
		}

		if !stmt.BilledTotal.IsZero() {
			summaries = append(summaries, &entity.StatementSummary{
				Year:        year,
				Month:       month,
				CycleEnd:    stmt.CycleEnd,
				DueDate:     stmt.DueDate,
				BilledTotal: stmt.BilledTotal,
				Status:      stmt.Status,
			})
		}

		// Once the whole cycle window precedes the oldest expense there is
		// nothing further back to find.
		if stmt.CycleEnd.Before(*oldest) {
			break
		}

		cursor = cursor.AddDate(0, -1, 0)
	}

	return summaries, nil
}

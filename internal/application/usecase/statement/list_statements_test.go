package statement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestListStatementsUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	profile := "personal"

	newUseCase := func(cardRepo *fakeCardRepo, expenseRepo *fakeExpenseRepo, billPaymentRepo *fakeBillPaymentRepo, now time.Time) *ListStatementsUseCase {
		clock := fixedClock{now: now}
		getStatement := NewGetStatementUseCase(cardRepo, expenseRepo, billPaymentRepo, clock)
		return NewListStatementsUseCase(getStatement, cardRepo, expenseRepo, clock)
	}

	t.Run("should list billed cycles most recent first", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		// Charges land on the july, june and april cycles; may stays empty.
		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 100, date(2024, time.July, 5)),
			testExpense(userID, profile, card.ID, 200, date(2024, time.June, 1)),
			testExpense(userID, profile, card.ID, 300, date(2024, time.April, 2)),
		)

		uc := newUseCase(newFakeCardRepo(card), expenseRepo, newFakeBillPaymentRepo(), date(2024, time.July, 15))

		summaries, err := uc.Execute(context.Background(), ListStatementsInput{
			UserID: userID, Profile: profile, CardID: card.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summaries) != 3 {
			t.Fatalf("expected 3 summaries, got %d", len(summaries))
		}

		expected := []struct {
			month  time.Month
			billed int64
		}{
			{time.July, 100},
			{time.June, 200},
			{time.April, 300},
		}
		for i, want := range expected {
			if summaries[i].Month != want.month {
				t.Errorf("summary %d: expected month %s, got %s", i, want.month, summaries[i].Month)
			}
			if !summaries[i].BilledTotal.Equal(decimal.NewFromInt(want.billed)) {
				t.Errorf("summary %d: expected billed %d, got %s", i, want.billed, summaries[i].BilledTotal)
			}
		}
	})

	t.Run("should stop scanning past the oldest expense", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 100, date(2024, time.June, 1)),
		)

		uc := newUseCase(newFakeCardRepo(card), expenseRepo, newFakeBillPaymentRepo(), date(2024, time.July, 15))

		summaries, err := uc.Execute(context.Background(), ListStatementsInput{
			UserID: userID, Profile: profile, CardID: card.ID, MaxCycles: 24,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].Month != time.June {
			t.Errorf("expected june summary, got %s", summaries[0].Month)
		}
	})

	t.Run("should cap the scan at the lookback limit", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		// One charge per month over two years; only the most recent cycles
		// within the limit come back.
		expenseRepo := newFakeExpenseRepo()
		cursor := date(2022, time.August, 5)
		for cursor.Before(date(2024, time.August, 1)) {
			e := testExpense(userID, profile, card.ID, 50, cursor)
			expenseRepo.expenses[e.ID] = e
			cursor = cursor.AddDate(0, 1, 0)
		}

		uc := newUseCase(newFakeCardRepo(card), expenseRepo, newFakeBillPaymentRepo(), date(2024, time.July, 15))

		summaries, err := uc.Execute(context.Background(), ListStatementsInput{
			UserID: userID, Profile: profile, CardID: card.ID, MaxCycles: 6,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summaries) != 6 {
			t.Errorf("expected 6 summaries, got %d", len(summaries))
		}
	})

	t.Run("should return empty list when the card has no expenses", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		uc := newUseCase(newFakeCardRepo(card), newFakeExpenseRepo(), newFakeBillPaymentRepo(), date(2024, time.July, 15))

		summaries, err := uc.Execute(context.Background(), ListStatementsInput{
			UserID: userID, Profile: profile, CardID: card.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summaries) != 0 {
			t.Errorf("expected no summaries, got %d", len(summaries))
		}
	})
}

package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
)

func testCard(userID uuid.UUID, profile string, closingDay, dueDay int) *entity.Card {
	return entity.NewCard(userID, profile, "Nubank", decimal.NewFromInt(5000), closingDay, dueDay)
}

func testExpense(userID uuid.UUID, profile string, cardID uuid.UUID, amount int64, expenseDate time.Time) *entity.Expense {
	return entity.NewExpense(userID, profile, "mercado", decimal.NewFromInt(amount), expenseDate, &cardID, "Cartão: Nubank", "alimentação")
}

func testBillPayment(userID uuid.UUID, profile string, cardID uuid.UUID, amount int64, paymentDate time.Time, paymentType entity.BillPaymentType) *entity.BillPayment {
	return entity.NewBillPayment(userID, profile, cardID, "pagamento fatura", decimal.NewFromInt(amount), paymentDate, paymentType)
}

func TestGetStatementUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	profile := "personal"

	t.Run("should aggregate expenses inside the cycle window", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 100, date(2024, time.June, 11)),
			testExpense(userID, profile, card.ID, 200, date(2024, time.July, 5)),
			testExpense(userID, profile, card.ID, 50, date(2024, time.July, 10)),
			// Boundary cases: the day of the previous closing belongs to the
			// previous cycle, the day after this closing to the next one.
			testExpense(userID, profile, card.ID, 999, date(2024, time.June, 10)),
			testExpense(userID, profile, card.ID, 999, date(2024, time.July, 11)),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		stmt, err := uc.Execute(context.Background(), GetStatementInput{
			UserID:  userID,
			Profile: profile,
			CardID:  card.ID,
			Year:    2024,
			Month:   time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stmt.BilledTotal.Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected billed total 350, got %s", stmt.BilledTotal)
		}
		if len(stmt.Expenses) != 3 {
			t.Errorf("expected 3 expenses on the statement, got %d", len(stmt.Expenses))
		}
		if !startOfDay(stmt.CycleStart).Equal(date(2024, time.June, 11)) {
			t.Errorf("expected cycle start 2024-06-11, got %v", stmt.CycleStart)
		}
		if !startOfDay(stmt.DueDate).Equal(date(2024, time.July, 20)) {
			t.Errorf("expected due date 2024-07-20, got %v", stmt.DueDate)
		}
	})

	t.Run("should settle a payment made before the calendar month of the purchases", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		// The july cycle opens june 11. A payment on june 15 lands after the
		// previous closing and settles the july statement.
		billPaymentRepo := newFakeBillPaymentRepo(
			testBillPayment(userID, profile, card.ID, 300, date(2024, time.June, 15), entity.BillPaymentTypePayment),
		)
		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 300, date(2024, time.July, 5)),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			billPaymentRepo,
			fixedClock{now: date(2024, time.July, 15)},
		)

		stmt, err := uc.Execute(context.Background(), GetStatementInput{
			UserID:  userID,
			Profile: profile,
			CardID:  card.ID,
			Year:    2024,
			Month:   time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stmt.PaidTotal.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected paid total 300, got %s", stmt.PaidTotal)
		}
		if stmt.Status.Label != entity.StatementLabelPaid {
			t.Errorf("expected label paid, got %s", stmt.Status.Label)
		}
	})

	t.Run("should push a payment after closing into the next cycle", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		billPaymentRepo := newFakeBillPaymentRepo(
			testBillPayment(userID, profile, card.ID, 300, date(2024, time.July, 12), entity.BillPaymentTypePayment),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			newFakeExpenseRepo(),
			billPaymentRepo,
			fixedClock{now: date(2024, time.August, 1)},
		)

		july, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		august, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.August,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !july.PaidTotal.IsZero() {
			t.Errorf("expected nothing paid on the july statement, got %s", july.PaidTotal)
		}
		if !august.PaidTotal.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected paid total 300 on the august statement, got %s", august.PaidTotal)
		}
	})

	t.Run("should subtract refunds from the billed total", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 400, date(2024, time.July, 2)),
		)
		billPaymentRepo := newFakeBillPaymentRepo(
			testBillPayment(userID, profile, card.ID, 150, date(2024, time.July, 8), entity.BillPaymentTypeRefund),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			billPaymentRepo,
			fixedClock{now: date(2024, time.July, 15)},
		)

		stmt, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stmt.NetTotal.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected net total 250, got %s", stmt.NetTotal)
		}
		if !stmt.RefundTotal.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected refund total 150, got %s", stmt.RefundTotal)
		}
		if len(stmt.Refunds) != 1 {
			t.Errorf("expected 1 refund on the statement, got %d", len(stmt.Refunds))
		}
	})

	t.Run("should clamp the net total at zero when refunds exceed charges", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)

		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 100, date(2024, time.July, 2)),
		)
		billPaymentRepo := newFakeBillPaymentRepo(
			testBillPayment(userID, profile, card.ID, 300, date(2024, time.July, 8), entity.BillPaymentTypeRefund),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			billPaymentRepo,
			fixedClock{now: date(2024, time.July, 15)},
		)

		stmt, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stmt.NetTotal.IsZero() {
			t.Errorf("expected net total clamped to zero, got %s", stmt.NetTotal)
		}
	})

	t.Run("should ignore records from other users and profiles", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)
		otherUser := uuid.New()

		expenseRepo := newFakeExpenseRepo(
			testExpense(userID, profile, card.ID, 100, date(2024, time.July, 2)),
			testExpense(otherUser, profile, card.ID, 500, date(2024, time.July, 3)),
			testExpense(userID, "business", card.ID, 500, date(2024, time.July, 4)),
		)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		stmt, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stmt.BilledTotal.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected billed total 100, got %s", stmt.BilledTotal)
		}
	})

	t.Run("should return error when the cycle month is invalid", func(t *testing.T) {
		uc := NewGetStatementUseCase(
			newFakeCardRepo(),
			newFakeExpenseRepo(),
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		_, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: uuid.New(), Year: 2024, Month: time.Month(13),
		})

		var stmtErr *domainerror.StatementError
		if !errors.As(err, &stmtErr) || stmtErr.Code != domainerror.ErrCodeInvalidCycleMonth {
			t.Errorf("expected invalid cycle month error, got %v", err)
		}
	})

	t.Run("should return error when the card is not found", func(t *testing.T) {
		uc := NewGetStatementUseCase(
			newFakeCardRepo(),
			newFakeExpenseRepo(),
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		_, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: uuid.New(), Year: 2024, Month: time.July,
		})

		if !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected card not found, got %v", err)
		}
	})

	t.Run("should return error when the card has no cycle configuration", func(t *testing.T) {
		card := testCard(userID, profile, 0, 0)

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			newFakeExpenseRepo(),
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		_, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})

		var stmtErr *domainerror.StatementError
		if !errors.As(err, &stmtErr) || stmtErr.Code != domainerror.ErrCodeIncompleteCardConfig {
			t.Errorf("expected incomplete card config error, got %v", err)
		}
	})

	t.Run("should wrap record stream failures as statement unavailable", func(t *testing.T) {
		card := testCard(userID, profile, 10, 20)
		expenseRepo := newFakeExpenseRepo()
		expenseRepo.failQueries = true

		uc := NewGetStatementUseCase(
			newFakeCardRepo(card),
			expenseRepo,
			newFakeBillPaymentRepo(),
			fixedClock{now: date(2024, time.July, 15)},
		)

		_, err := uc.Execute(context.Background(), GetStatementInput{
			UserID: userID, Profile: profile, CardID: card.ID, Year: 2024, Month: time.July,
		})

		var stmtErr *domainerror.StatementError
		if !errors.As(err, &stmtErr) || stmtErr.Code != domainerror.ErrCodeStatementUnavailable {
			t.Errorf("expected statement unavailable error, got %v", err)
		}
		if !errors.Is(err, errFakeStore) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})
}

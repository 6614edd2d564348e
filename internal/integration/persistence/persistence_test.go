package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.CardModel{}, &model.ExpenseModel{}, &model.BillPaymentModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCardRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profile := "personal"

	t.Run("should round trip a card through the database", func(t *testing.T) {
		repo := NewCardRepository(openTestDB(t))
		card := entity.NewCard(userID, profile, "Nubank", decimal.NewFromInt(5000), 10, 20)

		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByID(ctx, card.ID, userID, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Name != "Nubank" || found.ClosingDay != 10 || found.DueDay != 20 {
			t.Errorf("card did not survive the round trip: %+v", found)
		}
		if !found.Limit.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected limit 5000, got %s", found.Limit)
		}
	})

	t.Run("should not expose cards across owners", func(t *testing.T) {
		repo := NewCardRepository(openTestDB(t))
		card := entity.NewCard(userID, profile, "Nubank", decimal.NewFromInt(5000), 10, 20)
		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.FindByID(ctx, card.ID, uuid.New(), profile); !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected card not found for another user, got %v", err)
		}
		if _, err := repo.FindByID(ctx, card.ID, userID, "business"); !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected card not found for another profile, got %v", err)
		}
	})

	t.Run("should hide soft deleted cards", func(t *testing.T) {
		repo := NewCardRepository(openTestDB(t))
		card := entity.NewCard(userID, profile, "Nubank", decimal.NewFromInt(5000), 10, 20)
		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := repo.Delete(ctx, card.ID, userID, profile); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.FindByID(ctx, card.ID, userID, profile); !errors.Is(err, domainerror.ErrCardNotFound) {
			t.Errorf("expected card not found after delete, got %v", err)
		}
	})
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profile := "personal"
	cardID := uuid.New()

	newExpense := func(amount int64, expenseDate time.Time) *entity.Expense {
		return entity.NewExpense(userID, profile, "mercado", decimal.NewFromInt(amount), expenseDate, &cardID, "", "alimentação")
	}

	t.Run("should filter expenses by date window inclusively", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		inside := newExpense(100, date(2024, time.July, 5))
		onStart := newExpense(50, date(2024, time.June, 11))
		before := newExpense(999, date(2024, time.June, 10))
		if err := repo.CreateBatch(ctx, []*entity.Expense{inside, onStart, before}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		start := date(2024, time.June, 11)
		end := date(2024, time.July, 10)
		expenses, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{
			UserID:    userID,
			Profile:   profile,
			CardID:    &cardID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses in the window, got %d", len(expenses))
		}
	})

	t.Run("should sum amounts by filter", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		if err := repo.CreateBatch(ctx, []*entity.Expense{
			newExpense(100, date(2024, time.July, 5)),
			newExpense(250, date(2024, time.July, 6)),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		total, err := repo.SumByFilter(ctx, adapter.ExpenseFilter{
			UserID:  userID,
			Profile: profile,
			CardID:  &cardID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected sum 350, got %s", total)
		}
	})

	t.Run("should find installment siblings in order", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		originalID := uuid.New()
		var batch []*entity.Expense
		for i := 0; i < 3; i++ {
			e := newExpense(100, date(2024, time.May, 5).AddDate(0, i, 0))
			e.OriginalExpenseID = &originalID
			e.Installments = 3
			e.CurrentInstallment = i + 1
			batch = append(batch, e)
		}
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		siblings, err := repo.FindInstallmentSiblings(ctx, originalID, userID, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(siblings) != 3 {
			t.Fatalf("expected 3 siblings, got %d", len(siblings))
		}
		for i, s := range siblings {
			if s.CurrentInstallment != i+1 {
				t.Errorf("expected sibling %d at position %d, got %d", i+1, i, s.CurrentInstallment)
			}
		}
	})

	t.Run("should report the oldest expense date or nil", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		oldest, err := repo.FindOldestExpenseDate(ctx, userID, profile, cardID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if oldest != nil {
			t.Errorf("expected nil for an empty card, got %v", oldest)
		}

		if err := repo.CreateBatch(ctx, []*entity.Expense{
			newExpense(100, date(2024, time.July, 5)),
			newExpense(50, date(2024, time.March, 2)),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		oldest, err = repo.FindOldestExpenseDate(ctx, userID, profile, cardID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if oldest == nil || !oldest.Equal(date(2024, time.March, 2)) {
			t.Errorf("expected oldest 2024-03-02, got %v", oldest)
		}
	})

	t.Run("should anticipate installments atomically", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		originalID := uuid.New()
		var batch []*entity.Expense
		for i := 0; i < 5; i++ {
			e := newExpense(100, date(2024, time.May, 5).AddDate(0, i, 0))
			e.OriginalExpenseID = &originalID
			e.Installments = 5
			e.CurrentInstallment = i + 1
			batch = append(batch, e)
		}
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		replacement := entity.NewExpense(userID, profile, "mercado", decimal.NewFromInt(280), batch[2].Date, &cardID, "", "alimentação")
		deleteIDs := []uuid.UUID{batch[2].ID, batch[3].ID, batch[4].ID}

		if err := repo.AnticipateInstallments(ctx, deleteIDs, replacement); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		remaining, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{UserID: userID, Profile: profile, CardID: &cardID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 3 {
			t.Fatalf("expected 3 records after anticipation, got %d", len(remaining))
		}

		if _, err := repo.FindByID(ctx, replacement.ID, userID, profile); err != nil {
			t.Errorf("replacement not stored: %v", err)
		}
	})

	t.Run("should roll the anticipation back when a record is missing", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		originalID := uuid.New()
		var batch []*entity.Expense
		for i := 0; i < 3; i++ {
			e := newExpense(100, date(2024, time.May, 5).AddDate(0, i, 0))
			e.OriginalExpenseID = &originalID
			e.Installments = 3
			e.CurrentInstallment = i + 1
			batch = append(batch, e)
		}
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		replacement := entity.NewExpense(userID, profile, "mercado", decimal.NewFromInt(190), batch[1].Date, &cardID, "", "alimentação")
		deleteIDs := []uuid.UUID{batch[1].ID, uuid.New()}

		if err := repo.AnticipateInstallments(ctx, deleteIDs, replacement); err == nil {
			t.Fatal("expected an error for a missing record")
		}

		remaining, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{UserID: userID, Profile: profile, CardID: &cardID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 3 {
			t.Errorf("expected the original 3 records to survive the rollback, got %d", len(remaining))
		}
	})

	t.Run("should not anticipate records owned by another user", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		originalID := uuid.New()
		var batch []*entity.Expense
		for i := 0; i < 2; i++ {
			e := newExpense(100, date(2024, time.May, 5).AddDate(0, i, 0))
			e.OriginalExpenseID = &originalID
			e.Installments = 2
			e.CurrentInstallment = i + 1
			batch = append(batch, e)
		}
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		otherUser := uuid.New()
		foreign := entity.NewExpense(otherUser, profile, "farmácia", decimal.NewFromInt(60), date(2024, time.May, 5), &cardID, "", "saúde")
		if err := repo.CreateBatch(ctx, []*entity.Expense{foreign}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		replacement := entity.NewExpense(userID, profile, "mercado", decimal.NewFromInt(160), batch[1].Date, &cardID, "", "alimentação")
		deleteIDs := []uuid.UUID{batch[1].ID, foreign.ID}

		if err := repo.AnticipateInstallments(ctx, deleteIDs, replacement); err == nil {
			t.Fatal("expected an error when a record belongs to another user")
		}

		if _, err := repo.FindByID(ctx, foreign.ID, otherUser, profile); err != nil {
			t.Errorf("foreign record should survive: %v", err)
		}
		remaining, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{UserID: userID, Profile: profile, CardID: &cardID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 2 {
			t.Errorf("expected the original 2 records to survive the rollback, got %d", len(remaining))
		}
		if _, err := repo.FindByID(ctx, replacement.ID, userID, profile); err == nil {
			t.Error("replacement must not be stored when the deletion is rejected")
		}
	})

	t.Run("should delete a whole purchase by original expense", func(t *testing.T) {
		repo := NewExpenseRepository(openTestDB(t))

		originalID := uuid.New()
		var batch []*entity.Expense
		for i := 0; i < 3; i++ {
			e := newExpense(100, date(2024, time.May, 5).AddDate(0, i, 0))
			e.OriginalExpenseID = &originalID
			e.Installments = 3
			e.CurrentInstallment = i + 1
			batch = append(batch, e)
		}
		standalone := newExpense(40, date(2024, time.May, 7))
		batch = append(batch, standalone)
		if err := repo.CreateBatch(ctx, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		deleted, err := repo.DeleteByOriginalExpense(ctx, originalID, userID, profile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 3 {
			t.Errorf("expected 3 deletions, got %d", deleted)
		}

		if _, err := repo.FindByID(ctx, standalone.ID, userID, profile); err != nil {
			t.Errorf("standalone expense should survive: %v", err)
		}
	})
}

func TestBillPaymentRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profile := "personal"
	cardID := uuid.New()

	newPayment := func(amount int64, paymentDate time.Time, paymentType entity.BillPaymentType) *entity.BillPayment {
		return entity.NewBillPayment(userID, profile, cardID, "pagamento", decimal.NewFromInt(amount), paymentDate, paymentType)
	}

	t.Run("should apply the exclusive lower bound of the payment window", func(t *testing.T) {
		repo := NewBillPaymentRepository(openTestDB(t))

		// Window (jun 10 end of day, jul 10 end of day]. A payment exactly at
		// the lower bound stays out; one a nanosecond later is in.
		prevCycleEnd := time.Date(2024, time.June, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		cycleEnd := time.Date(2024, time.July, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

		atBound := newPayment(100, prevCycleEnd, entity.BillPaymentTypePayment)
		inside := newPayment(200, date(2024, time.June, 11), entity.BillPaymentTypePayment)
		atEnd := newPayment(300, cycleEnd, entity.BillPaymentTypePayment)
		after := newPayment(999, date(2024, time.July, 11), entity.BillPaymentTypePayment)

		for _, p := range []*entity.BillPayment{atBound, inside, atEnd, after} {
			if err := repo.Create(ctx, p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		payments, err := repo.FindByFilter(ctx, adapter.BillPaymentFilter{
			UserID:    userID,
			Profile:   profile,
			CardID:    &cardID,
			AfterDate: &prevCycleEnd,
			EndDate:   &cycleEnd,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(payments) != 2 {
			t.Fatalf("expected 2 payments in the window, got %d", len(payments))
		}
		total := decimal.Zero
		for _, p := range payments {
			total = total.Add(p.Amount)
		}
		if !total.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected window total 500, got %s", total)
		}
	})

	t.Run("should separate payments from refunds by type", func(t *testing.T) {
		repo := NewBillPaymentRepository(openTestDB(t))

		if err := repo.Create(ctx, newPayment(100, date(2024, time.July, 5), entity.BillPaymentTypePayment)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Create(ctx, newPayment(40, date(2024, time.July, 6), entity.BillPaymentTypeRefund)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		refundType := entity.BillPaymentTypeRefund
		total, err := repo.SumByFilter(ctx, adapter.BillPaymentFilter{
			UserID:  userID,
			Profile: profile,
			CardID:  &cardID,
			Type:    &refundType,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected refund total 40, got %s", total)
		}
	})

	t.Run("should hide soft deleted payments", func(t *testing.T) {
		repo := NewBillPaymentRepository(openTestDB(t))

		payment := newPayment(100, date(2024, time.July, 5), entity.BillPaymentTypePayment)
		if err := repo.Create(ctx, payment); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Delete(ctx, payment.ID, userID, profile); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.FindByID(ctx, payment.ID, userID, profile); !errors.Is(err, domainerror.ErrBillPaymentNotFound) {
			t.Errorf("expected bill payment not found after delete, got %v", err)
		}
	})
}

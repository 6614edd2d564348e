package statement

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
)

// fixedClock returns a constant instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakeCardRepo is an in-memory adapter.CardRepository.
type fakeCardRepo struct {
	cards map[uuid.UUID]*entity.Card
}

func newFakeCardRepo(cards ...*entity.Card) *fakeCardRepo {
	repo := &fakeCardRepo{cards: make(map[uuid.UUID]*entity.Card)}
	for _, c := range cards {
		repo.cards[c.ID] = c
	}
	return repo
}

func (r *fakeCardRepo) Create(ctx context.Context, card *entity.Card) error {
	r.cards[card.ID] = card
	return nil
}

func (r *fakeCardRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Card, error) {
	card, ok := r.cards[id]
	if !ok || card.UserID != userID || card.Profile != profile {
		return nil, domainerror.ErrCardNotFound
	}
	return card, nil
}

func (r *fakeCardRepo) FindByOwner(ctx context.Context, userID uuid.UUID, profile string) ([]*entity.Card, error) {
	var result []*entity.Card
	for _, c := range r.cards {
		if c.UserID == userID && c.Profile == profile {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCardRepo) Update(ctx context.Context, card *entity.Card) error {
	r.cards[card.ID] = card
	return nil
}

func (r *fakeCardRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	delete(r.cards, id)
	return nil
}

// fakeExpenseRepo is an in-memory adapter.ExpenseRepository. Setting
// failAnticipate simulates a commit failure: the call errors and no record
// is touched.
type fakeExpenseRepo struct {
	mu             sync.Mutex
	expenses       map[uuid.UUID]*entity.Expense
	failAnticipate bool
	failQueries    bool
}

func newFakeExpenseRepo(expenses ...*entity.Expense) *fakeExpenseRepo {
	repo := &fakeExpenseRepo{expenses: make(map[uuid.UUID]*entity.Expense)}
	for _, e := range expenses {
		repo.expenses[e.ID] = e
	}
	return repo
}

var errFakeStore = errors.New("store unavailable")

func (r *fakeExpenseRepo) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range expenses {
		r.expenses[e.ID] = e
	}
	return nil
}

func (r *fakeExpenseRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID || e.Profile != profile {
		return nil, domainerror.ErrExpenseNotFound
	}
	return e, nil
}

func (r *fakeExpenseRepo) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failQueries {
		return nil, errFakeStore
	}
	var result []*entity.Expense
	for _, e := range r.expenses {
		if matchesExpenseFilter(e, filter) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeExpenseRepo) SumByFilter(ctx context.Context, filter adapter.ExpenseFilter) (decimal.Decimal, error) {
	expenses, err := r.FindByFilter(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r *fakeExpenseRepo) FindInstallmentSiblings(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID != userID || e.Profile != profile {
			continue
		}
		if e.OriginalExpenseID != nil && *e.OriginalExpenseID == originalExpenseID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeExpenseRepo) FindOldestExpenseDate(ctx context.Context, userID uuid.UUID, profile string, cardID uuid.UUID) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *time.Time
	for _, e := range r.expenses {
		if e.UserID != userID || e.Profile != profile || e.CardID == nil || *e.CardID != cardID {
			continue
		}
		if oldest == nil || e.Date.Before(*oldest) {
			d := e.Date
			oldest = &d
		}
	}
	return oldest, nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) DeleteByOriginalExpense(ctx context.Context, originalExpenseID uuid.UUID, userID uuid.UUID, profile string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, e := range r.expenses {
		if e.OriginalExpenseID != nil && *e.OriginalExpenseID == originalExpenseID && e.UserID == userID && e.Profile == profile {
			delete(r.expenses, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeExpenseRepo) AnticipateInstallments(ctx context.Context, deleteIDs []uuid.UUID, replacement *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAnticipate {
		return errFakeStore
	}
	for _, id := range deleteIDs {
		delete(r.expenses, id)
	}
	r.expenses[replacement.ID] = replacement
	return nil
}

func (r *fakeExpenseRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.expenses)
}

func matchesExpenseFilter(e *entity.Expense, filter adapter.ExpenseFilter) bool {
	if e.UserID != filter.UserID || e.Profile != filter.Profile {
		return false
	}
	if filter.CardID != nil && (e.CardID == nil || *e.CardID != *filter.CardID) {
		return false
	}
	if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

// fakeBillPaymentRepo is an in-memory adapter.BillPaymentRepository.
type fakeBillPaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.BillPayment
}

func newFakeBillPaymentRepo(payments ...*entity.BillPayment) *fakeBillPaymentRepo {
	repo := &fakeBillPaymentRepo{payments: make(map[uuid.UUID]*entity.BillPayment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakeBillPaymentRepo) Create(ctx context.Context, payment *entity.BillPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakeBillPaymentRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) (*entity.BillPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.UserID != userID || p.Profile != profile {
		return nil, domainerror.ErrBillPaymentNotFound
	}
	return p, nil
}

func (r *fakeBillPaymentRepo) FindByFilter(ctx context.Context, filter adapter.BillPaymentFilter) ([]*entity.BillPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.BillPayment
	for _, p := range r.payments {
		if matchesBillPaymentFilter(p, filter) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeBillPaymentRepo) SumByFilter(ctx context.Context, filter adapter.BillPaymentFilter) (decimal.Decimal, error) {
	payments, err := r.FindByFilter(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (r *fakeBillPaymentRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID, profile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.payments, id)
	return nil
}

func matchesBillPaymentFilter(p *entity.BillPayment, filter adapter.BillPaymentFilter) bool {
	if p.UserID != filter.UserID || p.Profile != filter.Profile {
		return false
	}
	if filter.CardID != nil && p.CardID != *filter.CardID {
		return false
	}
	if filter.Type != nil && p.Type != *filter.Type {
		return false
	}
	if filter.AfterDate != nil && !p.Date.After(*filter.AfterDate) {
		return false
	}
	if filter.EndDate != nil && p.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

// fakeChangeBus is an in-memory adapter.ChangeBus that records published
// events and fans them out to subscriptions.
type fakeChangeBus struct {
	mu        sync.Mutex
	subs      []*fakeSubscription
	published []adapter.ChangeEvent
}

func newFakeChangeBus() *fakeChangeBus {
	return &fakeChangeBus{}
}

type fakeSubscription struct {
	events      chan adapter.ChangeEvent
	errs        chan error
	collections map[string]bool
	closeOnce   sync.Once
}

func (s *fakeSubscription) Events() <-chan adapter.ChangeEvent { return s.events }
func (s *fakeSubscription) Errors() <-chan error               { return s.errs }
func (s *fakeSubscription) Close() {
	s.closeOnce.Do(func() {
		close(s.events)
		close(s.errs)
	})
}

func (b *fakeChangeBus) Publish(ctx context.Context, event adapter.ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	for _, sub := range b.subs {
		if sub.collections[event.Collection] {
			sub.events <- event
		}
	}
	return nil
}

func (b *fakeChangeBus) Subscribe(ctx context.Context, collections ...string) (adapter.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &fakeSubscription{
		events:      make(chan adapter.ChangeEvent, 16),
		errs:        make(chan error, 1),
		collections: make(map[string]bool, len(collections)),
	}
	for _, c := range collections {
		sub.collections[c] = true
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

func (b *fakeChangeBus) failStream(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		sub.errs <- err
	}
}

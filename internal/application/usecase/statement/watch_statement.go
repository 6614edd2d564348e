package statement

import (
	"context"

	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/domain/entity"
)

// StatementWatch is a live view over one (card, cycle) pair. Statements()
// delivers a fresh, internally consistent snapshot after every relevant
// record change; Errors() surfaces stream failures without retrying. Close
// releases the underlying subscriptions; no background work survives it.
type StatementWatch struct {
	statements <-chan *entity.Statement
	errors     <-chan error
	cancel     context.CancelFunc
	sub        adapter.Subscription
}

// Statements returns the snapshot channel. It is closed on Close.
func (w *StatementWatch) Statements() <-chan *entity.Statement {
	return w.statements
}

// Errors returns the stream-failure channel.
func (w *StatementWatch) Errors() <-chan error {
	return w.errors
}

// Close tears down the watch and its subscriptions.
func (w *StatementWatch) Close() {
	w.cancel()
	w.sub.Close()
}

// WatchStatementUseCase keeps a statement current while a caller observes
// it: it subscribes to the three record streams (expenses, bill payments,
// cards), recomputes through the one-shot aggregator on every matching
// change, and emits the result. Recomputation is idempotent, so no ordering
// between the independent streams is required.
type WatchStatementUseCase struct {
	getStatement *GetStatementUseCase
	changeBus    adapter.ChangeBus
}

// NewWatchStatementUseCase creates a new WatchStatementUseCase instance.
func NewWatchStatementUseCase(
	getStatement *GetStatementUseCase,
	changeBus adapter.ChangeBus,
) *WatchStatementUseCase {
	return &WatchStatementUseCase{
		getStatement: getStatement,
		changeBus:    changeBus,
	}
}

// Watch computes the initial statement and then follows record changes until
// the watch is closed or the context ends.
func (uc *WatchStatementUseCase) Watch(ctx context.Context, input GetStatementInput) (*StatementWatch, error) {
	sub, err := uc.changeBus.Subscribe(ctx,
		adapter.CollectionExpenses,
		adapter.CollectionBillPayments,
		adapter.CollectionCards,
	)
	if err != nil {
		return nil, statementUnavailable(err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	statements := make(chan *entity.Statement, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(statements)
		defer close(errs)

		uc.recompute(watchCtx, input, statements, errs)

		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-sub.Events():
				if !ok {
					return
				}
				if !event.Matches(input.UserID, input.Profile, input.CardID) {
					continue
				}
				uc.recompute(watchCtx, input, statements, errs)
			case err, ok := <-sub.Errors():
				if !ok {
					return
				}
				// The last emitted statement is stale from here on; the
				// caller decides whether to keep showing it.
				select {
				case errs <- statementUnavailable(err):
				case <-watchCtx.Done():
					return
				}
			}
		}
	}()

	return &StatementWatch{
		statements: statements,
		errors:     errs,
		cancel:     cancel,
		sub:        sub,
	}, nil
}

func (uc *WatchStatementUseCase) recompute(
	ctx context.Context,
	input GetStatementInput,
	statements chan *entity.Statement,
	errs chan<- error,
) {
	stmt, err := uc.getStatement.Execute(ctx, input)
	if err != nil {
		select {
		case errs <- err:
		case <-ctx.Done():
		}
		return
	}

	// Drop the undelivered previous snapshot; only the latest matters.
	select {
	case <-statements:
	default:
	}

	select {
	case statements <- stmt:
	case <-ctx.Done():
	}
}

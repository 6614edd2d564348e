// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fatura-tracker/backend/config"
	"github.com/fatura-tracker/backend/internal/application/adapter"
	"github.com/fatura-tracker/backend/internal/application/usecase/billpayment"
	"github.com/fatura-tracker/backend/internal/application/usecase/card"
	"github.com/fatura-tracker/backend/internal/application/usecase/expense"
	"github.com/fatura-tracker/backend/internal/application/usecase/statement"
	"github.com/fatura-tracker/backend/internal/infra/server/router"
	"github.com/fatura-tracker/backend/internal/integration/adapters"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/fatura-tracker/backend/internal/integration/events"
	"github.com/fatura-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Bus    adapter.ChangeBus

	redisClient *redis.Client
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	injector := &Injector{
		Config: cfg,
		DB:     db,
	}

	// Create the change bus. The memory bus serves a single instance; Redis
	// fans events out so watchers on other instances stay fresh.
	switch cfg.Events.Driver {
	case "redis":
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		injector.redisClient = redis.NewClient(opts)
		injector.Bus = events.NewRedisBus(injector.redisClient)
	default:
		injector.Bus = events.NewMemoryBus()
	}

	// Create repositories
	cardRepo := persistence.NewCardRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	billPaymentRepo := persistence.NewBillPaymentRepository(db)

	// Create adapters/services
	clock := adapters.NewSystemClock()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create card use cases
	createCardUseCase := card.NewCreateCardUseCase(cardRepo, injector.Bus, clock)
	listCardsUseCase := card.NewListCardsUseCase(cardRepo)
	updateCardUseCase := card.NewUpdateCardUseCase(cardRepo, injector.Bus, clock)
	deleteCardUseCase := card.NewDeleteCardUseCase(cardRepo, injector.Bus, clock)

	// Create expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(cardRepo, expenseRepo, injector.Bus, clock)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, injector.Bus, clock)

	// Create bill payment use cases
	createBillPaymentUseCase := billpayment.NewCreateBillPaymentUseCase(cardRepo, billPaymentRepo, injector.Bus, clock)
	listBillPaymentsUseCase := billpayment.NewListBillPaymentsUseCase(billPaymentRepo)
	deleteBillPaymentUseCase := billpayment.NewDeleteBillPaymentUseCase(billPaymentRepo, injector.Bus, clock)

	// Create statement use cases
	getStatementUseCase := statement.NewGetStatementUseCase(cardRepo, expenseRepo, billPaymentRepo, clock)
	listStatementsUseCase := statement.NewListStatementsUseCase(getStatementUseCase, cardRepo, expenseRepo, clock)
	availableCreditUseCase := statement.NewGetAvailableCreditUseCase(getStatementUseCase, cardRepo, expenseRepo, clock)
	anticipateUseCase := statement.NewAnticipateInstallmentsUseCase(expenseRepo, injector.Bus, clock)
	watchStatementUseCase := statement.NewWatchStatementUseCase(getStatementUseCase, injector.Bus)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	cardController := controller.NewCardController(
		createCardUseCase,
		listCardsUseCase,
		updateCardUseCase,
		deleteCardUseCase,
	)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
		deleteExpenseUseCase,
	)

	billPaymentController := controller.NewBillPaymentController(
		createBillPaymentUseCase,
		listBillPaymentsUseCase,
		deleteBillPaymentUseCase,
	)

	statementController := controller.NewStatementController(
		getStatementUseCase,
		listStatementsUseCase,
		availableCreditUseCase,
		anticipateUseCase,
		watchStatementUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var anticipateRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		anticipateRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		anticipateRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	injector.Router = router.NewRouter(
		healthController,
		cardController,
		expenseController,
		billPaymentController,
		statementController,
		anticipateRateLimiter,
		authMiddleware,
	)

	return injector, nil
}

// Close releases resources held by the injector.
func (i *Injector) Close() error {
	if i.redisClient != nil {
		return i.redisClient.Close()
	}
	return nil
}

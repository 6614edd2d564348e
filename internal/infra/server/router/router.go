// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fatura-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	cardController        *controller.CardController
	expenseController     *controller.ExpenseController
	billPaymentController *controller.BillPaymentController
	statementController   *controller.StatementController
	anticipateRateLimiter *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	cardController *controller.CardController,
	expenseController *controller.ExpenseController,
	billPaymentController *controller.BillPaymentController,
	statementController *controller.StatementController,
	anticipateRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		cardController:        cardController,
		expenseController:     expenseController,
		billPaymentController: billPaymentController,
		statementController:   statementController,
		anticipateRateLimiter: anticipateRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Card routes (require authentication)
		if r.cardController != nil && r.authMiddleware != nil {
			cards := v1.Group("/cards")
			cards.Use(r.authMiddleware.Authenticate())
			{
				cards.GET("", r.cardController.List)
				cards.POST("", r.cardController.Create)
				cards.PUT("/:id", r.cardController.Update)
				cards.DELETE("/:id", r.cardController.Delete)

				// Statement routes (nested under cards)
				if r.statementController != nil {
					cards.GET("/:id/statement", r.statementController.Get)
					cards.GET("/:id/statement/watch", r.statementController.Watch)
					cards.GET("/:id/statements", r.statementController.List)
					cards.GET("/:id/available-credit", r.statementController.AvailableCredit)
				}
			}
		}

		// Expense routes (require authentication)
		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)
				expenses.DELETE("/:id", r.expenseController.Delete)
			}
		}

		// Bill payment routes (require authentication)
		if r.billPaymentController != nil && r.authMiddleware != nil {
			billPayments := v1.Group("/bill-payments")
			billPayments.Use(r.authMiddleware.Authenticate())
			{
				billPayments.GET("", r.billPaymentController.List)
				billPayments.POST("", r.billPaymentController.Create)
				billPayments.DELETE("/:id", r.billPaymentController.Delete)
			}
		}

		// Anticipation route (require authentication, rate limited)
		if r.statementController != nil && r.authMiddleware != nil {
			statements := v1.Group("/statements")
			statements.Use(r.authMiddleware.Authenticate())
			{
				if r.anticipateRateLimiter != nil {
					statements.POST("/anticipate", r.anticipateRateLimiter.Middleware(), r.statementController.Anticipate)
				} else {
					statements.POST("/anticipate", r.statementController.Anticipate)
				}
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/usecase/expense"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createExpenseUseCase *expense.CreateExpenseUseCase
	listExpensesUseCase  *expense.ListExpensesUseCase
	deleteExpenseUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createExpenseUseCase *expense.CreateExpenseUseCase,
	listExpensesUseCase *expense.ListExpensesUseCase,
	deleteExpenseUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		createExpenseUseCase: createExpenseUseCase,
		listExpensesUseCase:  listExpensesUseCase,
		deleteExpenseUseCase: deleteExpenseUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidExpenseDate),
		})
		return
	}

	var cardID *uuid.UUID
	if req.CardID != nil {
		parsed, err := uuid.Parse(*req.CardID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		cardID = &parsed
	}

	input := expense.CreateExpenseInput{
		UserID:        userID,
		Profile:       profile,
		Description:   req.Description,
		Amount:        decimal.NewFromFloat(req.Amount),
		Date:          date,
		CardID:        cardID,
		PaymentMethod: req.PaymentMethod,
		Category:      req.Category,
		Installments:  req.Installments,
	}

	output, err := c.createExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseListResponse(output.Expenses))
}

// List handles GET /expenses requests. card_id, start_date and end_date are
// optional narrowing filters.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		UserID:  userID,
		Profile: profile,
	}

	if raw := ctx.Query("card_id"); raw != "" {
		cardID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		input.CardID = &cardID
	}

	if raw := ctx.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
			})
			return
		}
		input.StartDate = &start
	}

	if raw := ctx.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &end
	}

	output, err := c.listExpensesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses))
}

// Delete handles DELETE /expenses/:id requests. With ?siblings=true on an
// installment, the whole purchase is removed.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID format",
		})
		return
	}

	output, err := c.deleteExpenseUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID:      expenseID,
		UserID:         userID,
		Profile:        profile,
		DeleteSiblings: ctx.Query("siblings") == "true",
	})
	if err != nil {
		handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteExpenseResponse{DeletedCount: output.DeletedCount})
}

// handleExpenseError maps expense errors to HTTP responses.
func handleExpenseError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		ctx.JSON(statusCodeForExpenseError(expenseErr.Code), dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrExpenseNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Expense not found",
			Code:  string(domainerror.ErrCodeExpenseNotFound),
		})
		return
	}

	// A dangling card reference surfaces as the card's own not-found error.
	if errors.Is(err, domainerror.ErrCardNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Card not found",
			Code:  string(domainerror.ErrCodeCardNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForExpenseError maps expense error codes to HTTP status codes.
func statusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeExpenseNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeEmptyExpenseDescription,
		domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeInvalidInstallments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

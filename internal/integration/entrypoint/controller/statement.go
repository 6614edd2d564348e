package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/usecase/statement"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/dto"
)

// StatementController handles statement computation endpoints.
type StatementController struct {
	getStatementUseCase       *statement.GetStatementUseCase
	listStatementsUseCase     *statement.ListStatementsUseCase
	getAvailableCreditUseCase *statement.GetAvailableCreditUseCase
	anticipateUseCase         *statement.AnticipateInstallmentsUseCase
	watchStatementUseCase     *statement.WatchStatementUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(
	getStatementUseCase *statement.GetStatementUseCase,
	listStatementsUseCase *statement.ListStatementsUseCase,
	getAvailableCreditUseCase *statement.GetAvailableCreditUseCase,
	anticipateUseCase *statement.AnticipateInstallmentsUseCase,
	watchStatementUseCase *statement.WatchStatementUseCase,
) *StatementController {
	return &StatementController{
		getStatementUseCase:       getStatementUseCase,
		listStatementsUseCase:     listStatementsUseCase,
		getAvailableCreditUseCase: getAvailableCreditUseCase,
		anticipateUseCase:         anticipateUseCase,
		watchStatementUseCase:     watchStatementUseCase,
	}
}

// Get handles GET /cards/:id/statement requests. The year and month query
// parameters select the cycle; both default to the current calendar month.
func (c *StatementController) Get(ctx *gin.Context) {
	input, ok := c.statementInputFromRequest(ctx)
	if !ok {
		return
	}

	stmt, err := c.getStatementUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(stmt))
}

// List handles GET /cards/:id/statements requests.
func (c *StatementController) List(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	maxCycles := 0
	if raw := ctx.Query("max_cycles"); raw != "" {
		maxCycles, err = strconv.Atoi(raw)
		if err != nil || maxCycles < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "max_cycles must be a positive integer",
			})
			return
		}
	}

	output, err := c.listStatementsUseCase.Execute(ctx.Request.Context(), statement.ListStatementsInput{
		UserID:    userID,
		Profile:   profile,
		CardID:    cardID,
		MaxCycles: maxCycles,
	})
	if err != nil {
		handleStatementError(ctx, err)
		return
	}

	summaries := make([]dto.StatementSummaryResponse, len(output))
	for i, summary := range output {
		summaries[i] = dto.ToStatementSummaryResponse(summary)
	}

	ctx.JSON(http.StatusOK, dto.StatementListResponse{Statements: summaries})
}

// AvailableCredit handles GET /cards/:id/available-credit requests.
func (c *StatementController) AvailableCredit(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	credit, err := c.getAvailableCreditUseCase.Execute(ctx.Request.Context(), statement.GetAvailableCreditInput{
		UserID:  userID,
		Profile: profile,
		CardID:  cardID,
	})
	if err != nil {
		handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAvailableCreditResponse(credit))
}

// Anticipate handles POST /statements/anticipate requests.
func (c *StatementController) Anticipate(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.AnticipateInstallmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	currentID, err := uuid.Parse(req.CurrentExpenseID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid current expense ID format",
		})
		return
	}

	futureIDs := make([]uuid.UUID, len(req.FutureExpenseIDs))
	for i, raw := range req.FutureExpenseIDs {
		futureIDs[i], err = uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid future expense ID format",
			})
			return
		}
	}

	output, err := c.anticipateUseCase.Execute(ctx.Request.Context(), statement.AnticipateInstallmentsInput{
		UserID:           userID,
		Profile:          profile,
		CurrentExpenseID: currentID,
		FutureExpenseIDs: futureIDs,
		NewTotal:         decimal.NewFromFloat(req.NewTotal),
	})
	if err != nil {
		handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AnticipateInstallmentsResponse{
		ReplacementID:   output.ReplacementID.String(),
		DeletedExpenses: output.DeletedExpenses,
		NewTotal:        output.NewTotal.String(),
		AnticipatedAt:   output.AnticipatedAt,
	})
}

// Watch handles GET /cards/:id/statement/watch requests. It streams fresh
// statement snapshots over server-sent events until the client disconnects.
func (c *StatementController) Watch(ctx *gin.Context) {
	input, ok := c.statementInputFromRequest(ctx)
	if !ok {
		return
	}

	watch, err := c.watchStatementUseCase.Watch(ctx.Request.Context(), input)
	if err != nil {
		handleStatementError(ctx, err)
		return
	}
	defer watch.Close()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case stmt, open := <-watch.Statements():
			if !open {
				return false
			}
			ctx.SSEvent("statement", dto.ToStatementResponse(stmt))
			return true
		case _, open := <-watch.Errors():
			if !open {
				return false
			}
			ctx.SSEvent("error", dto.ErrorResponse{
				Error: "Statement is temporarily unavailable",
				Code:  string(domainerror.ErrCodeStatementUnavailable),
			})
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// statementInputFromRequest resolves the owner, card and cycle of a
// statement request.
func (c *StatementController) statementInputFromRequest(ctx *gin.Context) (statement.GetStatementInput, bool) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return statement.GetStatementInput{}, false
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return statement.GetStatementInput{}, false
	}

	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if raw := ctx.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "year must be an integer",
			})
			return statement.GetStatementInput{}, false
		}
	}

	if raw := ctx.Query("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "month must be an integer",
			})
			return statement.GetStatementInput{}, false
		}
	}

	return statement.GetStatementInput{
		UserID:  userID,
		Profile: profile,
		CardID:  cardID,
		Year:    year,
		Month:   time.Month(month),
	}, true
}

// handleStatementError maps statement errors to HTTP responses.
func handleStatementError(ctx *gin.Context, err error) {
	var stmtErr *domainerror.StatementError
	if errors.As(err, &stmtErr) {
		ctx.JSON(statusCodeForStatementError(stmtErr.Code), dto.ErrorResponse{
			Error: stmtErr.Message,
			Code:  string(stmtErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrCardNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Card not found",
			Code:  string(domainerror.ErrCodeCardNotFound),
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

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForStatementError maps statement error codes to HTTP status codes.
func statusCodeForStatementError(code domainerror.StatementErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatementUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeIncompleteCardConfig,
		domainerror.ErrCodeInvalidCycleMonth,
		domainerror.ErrCodeNoInstallmentsSelected,
		domainerror.ErrCodeNotAnInstallment,
		domainerror.ErrCodeInstallmentMismatch,
		domainerror.ErrCodeInstallmentNotFuture,
		domainerror.ErrCodeInvalidAnticipationTotal:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

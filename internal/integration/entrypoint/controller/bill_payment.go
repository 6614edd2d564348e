package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/usecase/billpayment"
	"github.com/fatura-tracker/backend/internal/domain/entity"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/dto"
)

// BillPaymentController handles bill payment and refund endpoints.
type BillPaymentController struct {
	createBillPaymentUseCase *billpayment.CreateBillPaymentUseCase
	listBillPaymentsUseCase  *billpayment.ListBillPaymentsUseCase
	deleteBillPaymentUseCase *billpayment.DeleteBillPaymentUseCase
}

// NewBillPaymentController creates a new bill payment controller instance.
func NewBillPaymentController(
	createBillPaymentUseCase *billpayment.CreateBillPaymentUseCase,
	listBillPaymentsUseCase *billpayment.ListBillPaymentsUseCase,
	deleteBillPaymentUseCase *billpayment.DeleteBillPaymentUseCase,
) *BillPaymentController {
	return &BillPaymentController{
		createBillPaymentUseCase: createBillPaymentUseCase,
		listBillPaymentsUseCase:  listBillPaymentsUseCase,
		deleteBillPaymentUseCase: deleteBillPaymentUseCase,
	}
}

// Create handles POST /bill-payments requests.
func (c *BillPaymentController) Create(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateBillPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	input := billpayment.CreateBillPaymentInput{
		UserID:      userID,
		Profile:     profile,
		CardID:      cardID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Date:        date,
		Type:        entity.BillPaymentType(req.Type),
	}

	output, err := c.createBillPaymentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBillPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBillPaymentResponse(output.BillPayment))
}

// List handles GET /bill-payments requests. card_id and type are optional
// narrowing filters.
func (c *BillPaymentController) List(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	input := billpayment.ListBillPaymentsInput{
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

	if raw := ctx.Query("type"); raw != "" {
		paymentType := entity.BillPaymentType(raw)
		if !paymentType.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid bill payment type",
				Code:  string(domainerror.ErrCodeInvalidBillPaymentType),
			})
			return
		}
		input.Type = &paymentType
	}

	output, err := c.listBillPaymentsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBillPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillPaymentListResponse(output.BillPayments))
}

// Delete handles DELETE /bill-payments/:id requests.
func (c *BillPaymentController) Delete(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid bill payment ID format",
		})
		return
	}

	if _, err := c.deleteBillPaymentUseCase.Execute(ctx.Request.Context(), billpayment.DeleteBillPaymentInput{
		BillPaymentID: paymentID,
		UserID:        userID,
		Profile:       profile,
	}); err != nil {
		handleBillPaymentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBillPaymentError maps bill payment errors to HTTP responses.
func handleBillPaymentError(ctx *gin.Context, err error) {
	var paymentErr *domainerror.BillPaymentError
	if errors.As(err, &paymentErr) {
		ctx.JSON(statusCodeForBillPaymentError(paymentErr.Code), dto.ErrorResponse{
			Error: paymentErr.Message,
			Code:  string(paymentErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrBillPaymentNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Bill payment not found",
			Code:  string(domainerror.ErrCodeBillPaymentNotFound),
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

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForBillPaymentError maps bill payment error codes to HTTP status codes.
func statusCodeForBillPaymentError(code domainerror.BillPaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeBillPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBillPaymentNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidBillPaymentType,
		domainerror.ErrCodeInvalidBillPaymentAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

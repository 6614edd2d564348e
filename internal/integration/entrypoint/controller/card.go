// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fatura-tracker/backend/internal/application/usecase/card"
	domainerror "github.com/fatura-tracker/backend/internal/domain/error"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/fatura-tracker/backend/internal/integration/entrypoint/middleware"
)

// CardController handles card CRUD endpoints.
type CardController struct {
	createCardUseCase *card.CreateCardUseCase
	listCardsUseCase  *card.ListCardsUseCase
	updateCardUseCase *card.UpdateCardUseCase
	deleteCardUseCase *card.DeleteCardUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	createCardUseCase *card.CreateCardUseCase,
	listCardsUseCase *card.ListCardsUseCase,
	updateCardUseCase *card.UpdateCardUseCase,
	deleteCardUseCase *card.DeleteCardUseCase,
) *CardController {
	return &CardController{
		createCardUseCase: createCardUseCase,
		listCardsUseCase:  listCardsUseCase,
		updateCardUseCase: updateCardUseCase,
		deleteCardUseCase: deleteCardUseCase,
	}
}

// Create handles POST /cards requests.
func (c *CardController) Create(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := card.CreateCardInput{
		UserID:     userID,
		Profile:    profile,
		Name:       req.Name,
		Limit:      decimal.NewFromFloat(req.Limit),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	output, err := c.createCardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
	userID, profile, ok := ownerFromContext(ctx)
	if !ok {
		return
	}

	output, err := c.listCardsUseCase.Execute(ctx.Request.Context(), card.ListCardsInput{
		UserID:  userID,
		Profile: profile,
	})
	if err != nil {
		handleCardError(ctx, err)
		return
	}

	cards := make([]dto.CardResponse, len(output.Cards))
	for i, item := range output.Cards {
		cards[i] = dto.ToCardResponse(item)
	}

	ctx.JSON(http.StatusOK, dto.CardListResponse{Cards: cards})
}

// Update handles PUT /cards/:id requests.
func (c *CardController) Update(ctx *gin.Context) {
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

	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := card.UpdateCardInput{
		CardID:     cardID,
		UserID:     userID,
		Profile:    profile,
		Name:       req.Name,
		Limit:      decimal.NewFromFloat(req.Limit),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}

	output, err := c.updateCardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Delete handles DELETE /cards/:id requests.
func (c *CardController) Delete(ctx *gin.Context) {
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

	if _, err := c.deleteCardUseCase.Execute(ctx.Request.Context(), card.DeleteCardInput{
		CardID:  cardID,
		UserID:  userID,
		Profile: profile,
	}); err != nil {
		handleCardError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ownerFromContext resolves the authenticated (user, profile) pair or writes
// a 401 response.
func ownerFromContext(ctx *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, "", false
	}

	profile, ok := middleware.GetProfileFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, "", false
	}

	return userID, profile, true
}

// handleCardError maps card errors to HTTP responses.
func handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		ctx.JSON(statusCodeForCardError(cardErr.Code), dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
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

// statusCodeForCardError maps card error codes to HTTP status codes.
func statusCodeForCardError(code domainerror.CardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCardNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeEmptyCardName,
		domainerror.ErrCodeInvalidCardLimit,
		domainerror.ErrCodeInvalidClosingDay,
		domainerror.ErrCodeInvalidDueDay:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

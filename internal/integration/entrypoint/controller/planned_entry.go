package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/usecase/matching"
	"github.com/budget-tracker/backend/internal/application/usecase/plannedentry"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// PlannedEntryController handles planned entry and matching endpoints.
type PlannedEntryController struct {
	createUseCase         *plannedentry.CreatePlannedEntryUseCase
	listForMonthUseCase   *plannedentry.ListEntriesForMonthUseCase
	updateUseCase         *plannedentry.UpdatePlannedEntryUseCase
	deactivateUseCase     *plannedentry.DeactivatePlannedEntryUseCase
	matchUseCase          *matching.MatchEntryUseCase
	unmatchUseCase        *matching.UnmatchEntryUseCase
	dismissUseCase        *matching.DismissEntryUseCase
	undismissUseCase      *matching.UndismissEntryUseCase
	suggestMatchesUseCase *matching.SuggestMatchesUseCase
}

// NewPlannedEntryController creates a new planned entry controller instance.
func NewPlannedEntryController(
	createUseCase *plannedentry.CreatePlannedEntryUseCase,
	listForMonthUseCase *plannedentry.ListEntriesForMonthUseCase,
	updateUseCase *plannedentry.UpdatePlannedEntryUseCase,
	deactivateUseCase *plannedentry.DeactivatePlannedEntryUseCase,
	matchUseCase *matching.MatchEntryUseCase,
	unmatchUseCase *matching.UnmatchEntryUseCase,
	dismissUseCase *matching.DismissEntryUseCase,
	undismissUseCase *matching.UndismissEntryUseCase,
	suggestMatchesUseCase *matching.SuggestMatchesUseCase,
) *PlannedEntryController {
	return &PlannedEntryController{
		createUseCase:         createUseCase,
		listForMonthUseCase:   listForMonthUseCase,
		updateUseCase:         updateUseCase,
		deactivateUseCase:     deactivateUseCase,
		matchUseCase:          matchUseCase,
		unmatchUseCase:        unmatchUseCase,
		dismissUseCase:        dismissUseCase,
		undismissUseCase:      undismissUseCase,
		suggestMatchesUseCase: suggestMatchesUseCase,
	}
}

// parseMonthYearQuery reads the month and year query parameters, falling
// back to the current UTC month when absent.
func parseMonthYearQuery(ctx *gin.Context) (int, int, bool) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, false
		}
		month = parsed
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1970 || parsed > 9999 {
			return 0, 0, false
		}
		year = parsed
	}
	return month, year, true
}

// Create handles POST /planned-entries requests.
func (c *PlannedEntryController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreatePlannedEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	amountMin, err := decimal.NewFromString(req.AmountMin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount_min format",
			Code:  string(domainerror.ErrCodeInvalidAmountRange),
		})
		return
	}
	// amount_max defaults to amount_min for point expectations.
	amountMax := amountMin
	if req.AmountMax != "" {
		amountMax, err = decimal.NewFromString(req.AmountMax)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount_max format",
				Code:  string(domainerror.ErrCodeInvalidAmountRange),
			})
			return
		}
	}

	input := plannedentry.CreatePlannedEntryInput{
		OwnerType:          entity.OwnerTypeUser,
		OwnerID:            userID,
		CategoryID:         categoryID,
		Description:        req.Description,
		DescriptionPattern: req.DescriptionPattern,
		AmountMin:          amountMin,
		AmountMax:          amountMax,
		ExpectedDayStart:   req.ExpectedDayStart,
		ExpectedDayEnd:     req.ExpectedDayEnd,
		Type:               entity.EntryType(req.Type),
		IsRecurrent:        req.IsRecurrent,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPlannedEntryResponse(output.Entry))
}

// ListForMonth handles GET /planned-entries requests.
func (c *PlannedEntryController) ListForMonth(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := plannedentry.ListEntriesForMonthInput{
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
	}

	output, err := c.listForMonthUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthEntriesResponse(month, year, output.Entries))
}

// Update handles PATCH /planned-entries/:id requests.
func (c *PlannedEntryController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	var req dto.UpdatePlannedEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := plannedentry.UpdatePlannedEntryInput{
		EntryID:            entryID,
		OwnerType:          entity.OwnerTypeUser,
		OwnerID:            userID,
		Description:        req.Description,
		DescriptionPattern: req.DescriptionPattern,
		ExpectedDayStart:   req.ExpectedDayStart,
		ExpectedDayEnd:     req.ExpectedDayEnd,
		IsRecurrent:        req.IsRecurrent,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.AmountMin != nil {
		amountMin, err := decimal.NewFromString(*req.AmountMin)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount_min format",
				Code:  string(domainerror.ErrCodeInvalidAmountRange),
			})
			return
		}
		input.AmountMin = &amountMin
	}
	if req.AmountMax != nil {
		amountMax, err := decimal.NewFromString(*req.AmountMax)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount_max format",
				Code:  string(domainerror.ErrCodeInvalidAmountRange),
			})
			return
		}
		input.AmountMax = &amountMax
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlannedEntryResponse(output.Entry))
}

// Deactivate handles DELETE /planned-entries/:id requests.
func (c *PlannedEntryController) Deactivate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	input := plannedentry.DeactivatePlannedEntryInput{
		EntryID:   entryID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
	}

	if err := c.deactivateUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Match handles POST /planned-entries/:id/match requests.
func (c *PlannedEntryController) Match(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	var req dto.MatchEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	input := matching.MatchEntryInput{
		EntryID:       entryID,
		TransactionID: transactionID,
		OwnerType:     entity.OwnerTypeUser,
		OwnerID:       userID,
		Month:         month,
		Year:          year,
	}

	if err := c.matchUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry matched"})
}

// Unmatch handles POST /planned-entries/:id/unmatch requests.
func (c *PlannedEntryController) Unmatch(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := matching.UnmatchEntryInput{
		EntryID:   entryID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
	}

	if err := c.unmatchUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry unmatched"})
}

// Dismiss handles POST /planned-entries/:id/dismiss requests.
func (c *PlannedEntryController) Dismiss(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	// Dismissal reason is optional, so an empty body is fine.
	var req dto.DismissEntryRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}
	}

	input := matching.DismissEntryInput{
		EntryID:   entryID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
		Reason:    req.Reason,
	}

	if err := c.dismissUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry dismissed"})
}

// Undismiss handles POST /planned-entries/:id/undismiss requests.
func (c *PlannedEntryController) Undismiss(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := matching.UndismissEntryInput{
		EntryID:   entryID,
		OwnerType: entity.OwnerTypeUser,
		OwnerID:   userID,
		Month:     month,
		Year:      year,
	}

	if err := c.undismissUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry restored to pending"})
}

// SuggestMatches handles GET /transactions/:id/suggest-matches requests.
func (c *PlannedEntryController) SuggestMatches(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	month, year, ok := parseMonthYearQuery(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month or year",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := matching.SuggestMatchesInput{
		TransactionID: transactionID,
		OwnerType:     entity.OwnerTypeUser,
		OwnerID:       userID,
		Month:         month,
		Year:          year,
	}

	output, err := c.suggestMatchesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMatchSuggestionsResponse(output.Suggestions))
}

// handleEntryError handles planned entry errors and returns appropriate HTTP responses.
func (c *PlannedEntryController) handleEntryError(ctx *gin.Context, err error) {
	var entryErr *domainerror.PlannedEntryError
	if errors.As(err, &entryErr) {
		statusCode := c.getStatusCodeForEntryError(entryErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := http.StatusInternalServerError
		if txnErr.Code == domainerror.ErrCodeTransactionNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForEntryError maps planned entry error codes to HTTP status codes.
func (c *PlannedEntryController) getStatusCodeForEntryError(code domainerror.PlannedEntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeEntryNotFound, domainerror.ErrCodeStatusNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedEntry:
		return http.StatusForbidden
	case domainerror.ErrCodeTransactionAlreadyMatched,
		domainerror.ErrCodeEntryAlreadyMatched,
		domainerror.ErrCodeEntryNotMatched,
		domainerror.ErrCodeEntryDismissed,
		domainerror.ErrCodeStaleStatus:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidEntryType,
		domainerror.ErrCodeInvalidAmountRange,
		domainerror.ErrCodeInvalidDayRange,
		domainerror.ErrCodeInvalidMonth:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

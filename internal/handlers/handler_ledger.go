package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
	"github.com/vslakit/vsla_ledger_app/internal/dto"
	"github.com/vslakit/vsla_ledger_app/internal/middleware"
)

// actorHeader carries the acting user's ID. Authentication lives in front of
// this service; the gateway injects the header after verifying the caller.
const actorHeader = "X-Actor-User-ID"

// ledgerHandler handles HTTP requests for the four ledger operations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// actorFromRequest extracts the acting user ID, rejecting the request when it
// is absent. Operations require explicit attribution.
func actorFromRequest(c *gin.Context) (string, bool) {
	actor := c.GetHeader(actorHeader)
	if actor == "" {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Request missing actor header", slog.String("path", c.FullPath()))
		c.JSON(http.StatusBadRequest, gin.H{"error": actorHeader + " header is required"})
		return "", false
	}
	return actor, true
}

// statusFor maps a failed operation to an HTTP status. The body is the same
// envelope either way; clients branch on success, not on status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondOperation(c *gin.Context, data *dto.OperationData, err error) {
	result := dto.NewOperationResult(data, err)
	if err != nil {
		c.JSON(statusFor(err), result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ledgerHandler) recordSaving(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSaving", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	data, err := h.ledgerService.RecordSaving(c.Request.Context(), req, actor)
	respondOperation(c, data, err)
}

func (h *ledgerHandler) disburseLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DisburseLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	data, err := h.ledgerService.DisburseLoan(c.Request.Context(), req, actor)
	respondOperation(c, data, err)
}

func (h *ledgerHandler) recordLoanRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordLoanRepayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	data, err := h.ledgerService.RecordLoanRepayment(c.Request.Context(), req, actor)
	respondOperation(c, data, err)
}

func (h *ledgerHandler) recordFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordFine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	data, err := h.ledgerService.RecordFine(c.Request.Context(), req, actor)
	respondOperation(c, data, err)
}

// registerLedgerRoutes registers the transaction recording routes.
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	handler := newLedgerHandler(ledgerService)

	transactions := group.Group("/transactions")
	{
		transactions.POST("/savings", handler.recordSaving)
		transactions.POST("/loans", handler.disburseLoan)
		transactions.POST("/repayments", handler.recordLoanRepayment)
		transactions.POST("/fines", handler.recordFine)
	}
}

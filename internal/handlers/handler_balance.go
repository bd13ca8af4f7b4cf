package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
	"github.com/vslakit/vsla_ledger_app/internal/dto"
	"github.com/vslakit/vsla_ledger_app/internal/middleware"
)

// balanceHandler serves balance breakdowns and entry history reads.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

func (h *balanceHandler) getBalances(owner domain.Owner, c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var projectID *string
	if p := c.Query("projectID"); p != "" {
		projectID = &p
	}

	balances, err := h.balanceService.GetBalances(c.Request.Context(), owner, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
			return
		}
		logger.Error("Failed to compute balances",
			slog.String("owner", owner.String()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.BalancesResponse{
		OwnerType: string(owner.Type),
		OwnerID:   owner.ID,
		ProjectID: projectID,
		Balances:  *balances,
	})
}

func (h *balanceHandler) getMemberBalances(c *gin.Context) {
	h.getBalances(domain.UserOwner(c.Param("userID")), c)
}

func (h *balanceHandler) getGroupBalances(c *gin.Context) {
	h.getBalances(domain.GroupOwner(c.Param("groupID")), c)
}

func (h *balanceHandler) listEntries(owner domain.Owner, c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 0
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	page, err := h.balanceService.ListEntries(c.Request.Context(), owner, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries",
			slog.String("owner", owner.String()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *balanceHandler) listMemberEntries(c *gin.Context) {
	h.listEntries(domain.UserOwner(c.Param("userID")), c)
}

func (h *balanceHandler) listGroupEntries(c *gin.Context) {
	h.listEntries(domain.GroupOwner(c.Param("groupID")), c)
}

// registerBalanceRoutes registers the balance and entry history read routes.
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	handler := newBalanceHandler(balanceService)

	members := group.Group("/members")
	{
		members.GET("/:userID/balances", handler.getMemberBalances)
		members.GET("/:userID/entries", handler.listMemberEntries)
	}

	groups := group.Group("/groups")
	{
		groups.GET("/:groupID/balances", handler.getGroupBalances)
		groups.GET("/:groupID/entries", handler.listGroupEntries)
	}
}

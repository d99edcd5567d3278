package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves reconstructed account balances.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// RegisterLedgerRoutes registers routes related to account balances.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}
	rg.GET("/balances", h.getBalances)
}

// getBalances godoc
// @Summary Reconstruct account balances
// @Description Replays the transaction log from each account's initial balance. Records that cannot be applied are skipped and reported as issues.
// @Tags balances
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param as_of query string false "Inclusive cutoff date (YYYY-MM-DD)"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Invalid cutoff date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to reconstruct balances"
// @Router /workplaces/{workplace_id}/balances [get]
func (h *ledgerHandler) getBalances(c *gin.Context) {
	workplaceID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind balances query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	asOf, err := query.Cutoff()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconstruct balances")
		return
	}

	res, err := h.ledgerService.Balances(c.Request.Context(), workplaceID, asOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconstruct balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(res, asOf))
}

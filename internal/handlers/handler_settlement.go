package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// RegisterSettlementRoutes registers the debt netting route.
func RegisterSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := &settlementHandler{settlementService: settlementService}
	rg.GET("/settlement", h.getSettlement)
}

// getSettlement godoc
// @Summary Compute who pays whom
// @Description Nets every outstanding shared expense into per-member balances and a list of payments that clears them, per currency.
// @Tags settlement
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} dto.SettlementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute settlement"
// @Router /workplaces/{workplace_id}/settlement [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	workplaceID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	plan, err := h.settlementService.Plan(c.Request.Context(), workplaceID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(plan))
}

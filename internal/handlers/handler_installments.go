package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type installmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

// RegisterInstallmentRoutes registers the installment series route.
func RegisterInstallmentRoutes(rg *gin.RouterGroup, installmentService portssvc.InstallmentSvcFacade) {
	h := &installmentHandler{installmentService: installmentService}
	rg.POST("/installments", h.createSeries)
}

// createSeries godoc
// @Summary Create an installment series
// @Description Spreads a purchase over count monthly installments. Amounts are rounded to cents and the last installment absorbs the remainder.
// @Tags installments
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param request body dto.CreateInstallmentSeriesRequest true "Purchase to spread"
// @Param X-User-ID header string true "Caller identity"
// @Success 201 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid purchase or count"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create installment series"
// @Router /workplaces/{workplace_id}/installments [post]
func (h *installmentHandler) createSeries(c *gin.Context) {
	workplaceID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateInstallmentSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInstallmentSeries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	series, err := h.installmentService.CreateSeries(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create installment series")
		return
	}

	logger.Info("Installment series created", slog.String("series_id", series[0].SeriesID), slog.Int("installments", len(series)))
	c.JSON(http.StatusCreated, dto.ToListTransactionResponse(series))
}

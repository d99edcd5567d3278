package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler serves per-member invoices and split settlement.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// RegisterInvoiceRoutes registers routes related to shared expense invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}
	rg.GET("/invoices", h.listInvoices)
	rg.POST("/transactions/:transaction_id/settle", h.settleSplits)
}

// listInvoices godoc
// @Summary List invoices per member
// @Description Builds, from the caller's point of view, what each member owes (CREDIT) or is owed (DEBIT) for shared expenses.
// @Tags invoices
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param trip_id query string false "Only records of this trip"
// @Param month query string false "Calendar month (YYYY-MM), exclusive with from/to"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param status query string false "all, open or paid" Enums(all, open, paid)
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} dto.InvoicesResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build invoices"
// @Router /workplaces/{workplace_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	workplaceID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var query dto.InvoiceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind invoice query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build invoices")
		return
	}

	book, err := h.invoiceService.Invoices(c.Request.Context(), workplaceID, filter, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoicesResponse(book))
}

// settleSplits godoc
// @Summary Mark splits as settled
// @Description Marks the given members' splits of a shared expense as settled. An empty body settles every open split.
// @Tags invoices
// @Accept json
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param transaction_id path string true "Transaction ID"
// @Param request body dto.SettleSplitsRequest false "Members to settle"
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Not a shared expense or unknown member"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to settle splits"
// @Router /workplaces/{workplace_id}/transactions/{transaction_id}/settle [post]
func (h *invoiceHandler) settleSplits(c *gin.Context) {
	workplaceID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")
	logger = logger.With(slog.String("transaction_id", transactionID))

	var req dto.SettleSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for SettleSplits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tx, err := h.invoiceService.SettleSplits(c.Request.Context(), workplaceID, transactionID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle splits")
		return
	}

	logger.Info("Splits settled", slog.Bool("transaction_settled", tx.IsSettled))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

type paymentRequestHandler struct {
	paymentRequestService portssvc.PaymentRequestSvc
	settlementService     portssvc.SettlementSvc
}

func registerPaymentRequestRoutes(rg *gin.RouterGroup, prs portssvc.PaymentRequestSvc, ss portssvc.SettlementSvc) {
	h := &paymentRequestHandler{paymentRequestService: prs, settlementService: ss}

	rg.POST("/clubs/:club_id/payment-requests", h.createRequest)
	requests := rg.Group("/payment-requests/:request_id")
	{
		requests.GET("", h.getRequest)
		requests.POST("/refund", h.disburseRefund)
	}
}

// createRequest godoc
// @Summary Raise a payment request
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   request body dto.CreatePaymentRequestRequest true "Expected payment"
// @Success 201 {object} dto.PaymentRequestResponse
// @Router /clubs/{club_id}/payment-requests [post]
func (h *paymentRequestHandler) createRequest(c *gin.Context) {
	var req dto.CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	created, err := h.paymentRequestService.CreateRequest(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "create payment request")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment request created", slog.String("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponse(*created))
}

func (h *paymentRequestHandler) getRequest(c *gin.Context) {
	req, err := h.paymentRequestService.GetRequest(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		respondError(c, err, "retrieve payment request")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(*req))
}

// disburseRefund godoc
// @Summary Pay out a settlement refund
// @Description Transfers the refund through the bank, records the withdrawal and marks the request matched.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   request_id path string true "Settlement request ID"
// @Param   destination body dto.DisburseRefundRequest true "Member bank account"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 502 {object} map[string]string "Bank transfer failed"
// @Router /payment-requests/{request_id}/refund [post]
func (h *paymentRequestHandler) disburseRefund(c *gin.Context) {
	var req dto.DisburseRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	entry, err := h.settlementService.DisburseRefund(c.Request.Context(), c.Param("request_id"), req, actorID)
	if err != nil {
		respondError(c, err, "disburse refund")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

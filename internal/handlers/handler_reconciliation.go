package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// reconciliationHandler exposes the matched/unmatched views and officer-driven request transitions.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	location              *time.Location
}

func registerReconciliationRoutes(rg *gin.RouterGroup, svc portssvc.ReconciliationSvcFacade, loc *time.Location) {
	h := &reconciliationHandler{reconciliationService: svc, location: loc}

	club := rg.Group("/clubs/:club_id")
	{
		club.GET("/transactions", h.listTransactions)
		club.GET("/reconciliation/unmatched", h.listUnmatched)
		club.POST("/payment-requests/expire", h.expireRequests)
	}
	rg.POST("/payment-requests/:request_id/match", h.manualMatch)
}

// listTransactions godoc
// @Summary List processed bank transactions
// @Description Returns transactions that occurred in [from, to], newest first, each with the request it satisfied.
// @Tags reconciliation
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   from query string true "First day (YYYY-MM-DD)"
// @Param   to query string true "Last day (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /clubs/{club_id}/transactions [get]
func (h *reconciliationHandler) listTransactions(c *gin.Context) {
	var q dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err, "query parameters")
		return
	}
	from, err := parseDay(q.From, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return
	}
	to, err := parseDay(q.To, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return
	}

	txs, next, err := h.reconciliationService.ListTransactions(c.Request.Context(), c.Param("club_id"), dto.ListTransactionsParams{
		From:      from,
		To:        to,
		Limit:     q.Limit,
		NextToken: q.NextToken,
	})
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txs, NextToken: next})
}

func (h *reconciliationHandler) listUnmatched(c *gin.Context) {
	txs, reqs, err := h.reconciliationService.ListUnmatched(c.Request.Context(), c.Param("club_id"))
	if err != nil {
		respondError(c, err, "list unmatched items")
		return
	}
	c.JSON(http.StatusOK, dto.UnmatchedResponse{
		Transactions: txs,
		Requests:     dto.ToPaymentRequestResponses(reqs),
	})
}

func (h *reconciliationHandler) expireRequests(c *gin.Context) {
	expired, err := h.reconciliationService.ExpireOldRequests(c.Request.Context(), c.Param("club_id"))
	if err != nil {
		respondError(c, err, "expire payment requests")
		return
	}
	c.JSON(http.StatusOK, dto.ExpireResponse{Expired: expired})
}

// manualMatch godoc
// @Summary Match a payment request to a transaction by hand
// @Description Skips the name check; the request must still be matchable and the transaction unclaimed and of a compatible direction.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   request_id path string true "Payment request ID"
// @Param   match body dto.ManualMatchRequest true "Transaction to bind"
// @Success 200 {object} dto.PaymentRequestResponse
// @Failure 409 {object} map[string]string "Transaction already matched"
// @Router /payment-requests/{request_id}/match [post]
func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	var req dto.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	matched, err := h.reconciliationService.ManualMatch(c.Request.Context(), c.Param("request_id"), req.TransactionID, actorID)
	if err != nil {
		respondError(c, err, "match payment request")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentRequestResponse(*matched))
}

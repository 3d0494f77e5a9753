package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

type settlementHandler struct {
	settlementService portssvc.SettlementSvc
}

func registerSettlementRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvc) {
	h := &settlementHandler{settlementService: ss}

	events := rg.Group("/clubs/:club_id/events/:event_id")
	{
		events.POST("/collect", h.collectEntryFees)
		events.POST("/settle", h.settle)
	}
}

func (h *settlementHandler) collectEntryFees(c *gin.Context) {
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}
	created, err := h.settlementService.CollectEntryFees(c.Request.Context(), c.Param("club_id"), c.Param("event_id"), actorID)
	if err != nil {
		respondError(c, err, "collect entry fees")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponses(created))
}

// settle godoc
// @Summary Close an event and raise its refunds
// @Description Splits the event's leftover balance equally (rounded down) among the members who paid.
// @Tags settlements
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   event_id path string true "Event ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 409 {object} map[string]string "Event already closed"
// @Router /clubs/{club_id}/events/{event_id}/settle [post]
func (h *settlementHandler) settle(c *gin.Context) {
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.SettleAndRefund(c.Request.Context(), c.Param("club_id"), c.Param("event_id"), actorID)
	if err != nil {
		respondError(c, err, "settle event")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(*settlement))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// ledgerHandler serves the club journal.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	location      *time.Location
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, loc *time.Location) {
	h := &ledgerHandler{ledgerService: ls, location: loc}

	club := rg.Group("/clubs/:club_id")
	{
		club.GET("/ledger", h.listEntries)
		club.POST("/ledger", h.recordEntry)
		club.GET("/ledger/statement", h.statement)
		club.GET("/events/:event_id/ledger", h.listEventEntries)
	}
}

func (h *ledgerHandler) bindRange(c *gin.Context) (time.Time, time.Time, bool) {
	var q dto.ListLedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err, "query parameters")
		return time.Time{}, time.Time{}, false
	}
	from, err := parseDay(q.From, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDay(q.To, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	entries, err := h.ledgerService.ListEntries(c.Request.Context(), c.Param("club_id"), from, to)
	if err != nil {
		respondError(c, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

func (h *ledgerHandler) statement(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	st, err := h.ledgerService.Statement(c.Request.Context(), c.Param("club_id"), from, to)
	if err != nil {
		respondError(c, err, "build ledger statement")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *ledgerHandler) listEventEntries(c *gin.Context) {
	entries, err := h.ledgerService.ListEventEntries(c.Request.Context(), c.Param("club_id"), c.Param("event_id"))
	if err != nil {
		respondError(c, err, "list event ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// recordEntry godoc
// @Summary Record a manual ledger entry
// @Description For money that never crossed the bank account (cash spending) and corrections. Amounts are signed.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry"
// @Success 201 {object} dto.LedgerEntryResponse
// @Router /clubs/{club_id}/ledger [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordManualEntry(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "record ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(*entry))
}

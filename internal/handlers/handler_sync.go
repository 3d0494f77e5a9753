package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

// syncHandler triggers bank synchronisation for a club.
type syncHandler struct {
	syncService portssvc.SyncSvc
	location    *time.Location
}

func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvc, loc *time.Location, limit gin.HandlerFunc) {
	h := &syncHandler{syncService: syncService, location: loc}
	rg.POST("/clubs/:club_id/sync", limit, h.sync)
}

// sync godoc
// @Summary Synchronise a club account with its bank
// @Description Fetches transactions for [from, to], records new ones in the ledger and auto-matches payment requests.
// @Tags reconciliation
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   from query string false "First day (YYYY-MM-DD); with to omitted, defaults to the day after the latest ledger entry"
// @Param   to query string false "Last day (YYYY-MM-DD); with from omitted, defaults to today"
// @Success 200 {object} dto.SyncResponse
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /clubs/{club_id}/sync [post]
func (h *syncHandler) sync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err, "query parameters")
		return
	}
	from, err := parseOptionalDay(req.From, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return
	}
	to, err := parseOptionalDay(req.To, h.location)
	if err != nil {
		bindFailed(c, err, "query parameters")
		return
	}

	clubID := c.Param("club_id")
	result, err := h.syncService.Sync(c.Request.Context(), clubID, from, to)
	if err != nil {
		respondError(c, err, "sync club account")
		return
	}

	logger.Info("Sync finished", slog.String("club_id", clubID), slog.Int("ingested", result.Ingested), slog.Int("matched", len(result.Matched)))
	c.JSON(http.StatusOK, dto.SyncResponse{
		Ingested: result.Ingested,
		Entries:  dto.ToLedgerEntryResponses(result.Entries),
		Matched:  dto.ToPaymentRequestResponses(result.Matched),
	})
}

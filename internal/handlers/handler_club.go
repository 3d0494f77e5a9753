package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

// clubHandler handles the club directory: clubs, members, accounts and events.
type clubHandler struct {
	clubService portssvc.ClubSvcFacade
}

func newClubHandler(cs portssvc.ClubSvcFacade) *clubHandler {
	return &clubHandler{clubService: cs}
}

func registerClubRoutes(rg *gin.RouterGroup, clubService portssvc.ClubSvcFacade) {
	h := newClubHandler(clubService)

	rg.POST("/clubs", h.createClub)

	club := rg.Group("/clubs/:club_id")
	{
		club.GET("", h.getClub)
		club.POST("/members", h.addMember)
		club.POST("/accounts", h.registerAccount)
		club.POST("/accounts/open", h.openAccount)
		club.POST("/events", h.createEvent)
		club.GET("/events/:event_id", h.getEvent)
		club.POST("/events/:event_id/participants", h.addParticipant)
	}
}

// createClub godoc
// @Summary Create a club
// @Tags clubs
// @Accept  json
// @Produce  json
// @Param   club body dto.CreateClubRequest true "Club details"
// @Success 201 {object} domain.Club
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /clubs [post]
func (h *clubHandler) createClub(c *gin.Context) {
	var req dto.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	club, err := h.clubService.CreateClub(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err, "create club")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Club created", slog.String("club_id", club.ClubID))
	c.JSON(http.StatusCreated, club)
}

func (h *clubHandler) getClub(c *gin.Context) {
	club, err := h.clubService.GetClub(c.Request.Context(), c.Param("club_id"))
	if err != nil {
		respondError(c, err, "retrieve club")
		return
	}
	c.JSON(http.StatusOK, club)
}

// addMember godoc
// @Summary Add a member to a club
// @Description The real name and nickname are what automatic matching looks for in transfer descriptions.
// @Tags clubs
// @Accept  json
// @Produce  json
// @Param   club_id path string true "Club ID"
// @Param   member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} domain.Member
// @Router /clubs/{club_id}/members [post]
func (h *clubHandler) addMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	member, err := h.clubService.AddMember(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "add member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *clubHandler) registerAccount(c *gin.Context) {
	var req dto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	account, err := h.clubService.RegisterAccount(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "register account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *clubHandler) openAccount(c *gin.Context) {
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	account, err := h.clubService.OpenAccount(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "open account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *clubHandler) createEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	event, err := h.clubService.CreateEvent(c.Request.Context(), c.Param("club_id"), req, actorID)
	if err != nil {
		respondError(c, err, "create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *clubHandler) getEvent(c *gin.Context) {
	event, err := h.clubService.GetEvent(c.Request.Context(), c.Param("club_id"), c.Param("event_id"))
	if err != nil {
		respondError(c, err, "retrieve event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *clubHandler) addParticipant(c *gin.Context) {
	var req dto.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "request format")
		return
	}
	actorID, ok := actorFrom(c)
	if !ok {
		return
	}

	event, err := h.clubService.AddParticipant(c.Request.Context(), c.Param("club_id"), c.Param("event_id"), req, actorID)
	if err != nil {
		respondError(c, err, "add participant")
		return
	}
	c.JSON(http.StatusOK, event)
}

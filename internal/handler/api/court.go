package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CourtHandler struct {
	courtCommands commands.CourtCommands
	courtQueries  queries.CourtQueries
}

func NewCourtHandler(courtCommands commands.CourtCommands, courtQueries queries.CourtQueries) *CourtHandler {
	return &CourtHandler{
		courtCommands: courtCommands,
		courtQueries:  courtQueries,
	}
}

// @Summary Create court
// @Tags courts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCourtRequest true "Court"
// @Success 201 {object} resdto.CourtResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /courts [post]
func (h *CourtHandler) CreateCourt(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.courtCommands.CreateCourt(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromCourt(created)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List courts
// @Tags courts
// @Produce json
// @Success 200 {array} resdto.CourtResponse
// @Router /courts [get]
func (h *CourtHandler) ListCourts(c *gin.Context) {
	views, err := h.courtQueries.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromCourtViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get court
// @Tags courts
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} resdto.CourtResponse
// @Failure 404 {object} httperr.Response
// @Router /courts/{id} [get]
func (h *CourtHandler) GetCourt(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid court ID format")
	if !ok {
		return
	}

	view, err := h.courtQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromCourtView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profileCommands commands.ProfileCommands
	userQueries     queries.UserQueries
}

func NewUserHandler(profileCommands commands.ProfileCommands, userQueries queries.UserQueries) *UserHandler {
	return &UserHandler{
		profileCommands: profileCommands,
		userQueries:     userQueries,
	}
}

// @Summary Get profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /profile/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "Invalid user ID format")
	if !ok {
		return
	}

	view, err := h.userQueries.GetProfile(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromUserView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update profile
// @Description Partial update; omitted fields keep their values
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /profile/{id} [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "Invalid user ID format")
	if !ok {
		return
	}

	var req reqdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.profileCommands.UpdateProfile(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromUserView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	views, err := h.userQueries.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := resdto.FromUserViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

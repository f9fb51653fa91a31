package handler

import (
	"errors"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/service"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamHandler handles HTTP requests for team operations.
type TeamHandler struct {
	service service.TeamServicer
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service service.TeamServicer) *TeamHandler {
	return &TeamHandler{service: service}
}

// Create godoc
// @Summary      Create a team
// @Description  Create a team with the caller as owner, lead and sole member. Members cannot create teams.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateTeamRequest  true  "Team details"
// @Success      201      {object}  response.Response{data=models.Team}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Security     BearerAuth
// @Router       /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMemberCannotOwn):
			response.Forbidden(c, err.Error())
		case errors.Is(err, apperrors.ErrUnauthorized):
			response.Unauthorized(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, team)
}

// List godoc
// @Summary      List my teams
// @Tags         teams
// @Produce      json
// @Success      200  {object}  response.Response{data=models.TeamListResponse}
// @Failure      401  {object}  response.Response
// @Security     BearerAuth
// @Router       /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	teams, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, models.TeamListResponse{Items: teams})
}

// Get godoc
// @Summary      Get a team
// @Tags         teams
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.Team}
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)

	teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		response.BadRequest(c, "invalid team id format")
		return
	}

	team, err := h.service.Get(c.Request.Context(), actor, teamID)
	if err != nil {
		teamError(c, err)
		return
	}

	response.Success(c, team)
}

// Invite godoc
// @Summary      Invite a user to a team
// @Description  Add a user, looked up by email, to the team's member set and notify them.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId   path      string                      true  "Team ID"
// @Param        request  body      models.InviteMemberRequest  true  "Invitee email"
// @Success      200      {object}  response.Response{data=models.Team}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/members [post]
func (h *TeamHandler) Invite(c *gin.Context) {
	actor := middleware.GetActor(c)

	teamID, err := primitive.ObjectIDFromHex(c.Param("teamId"))
	if err != nil {
		response.BadRequest(c, "invalid team id format")
		return
	}

	var req models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.Invite(c.Request.Context(), actor, teamID, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyMember) {
			response.Conflict(c, err.Error())
			return
		}
		teamError(c, err)
		return
	}

	response.Success(c, team)
}

// teamError maps team service errors to HTTP responses.
func teamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTeamNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c)
	}
}

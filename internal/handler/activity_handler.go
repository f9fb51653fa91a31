package handler

import (
	"errors"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/service"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActivityHandler handles HTTP requests for the global activity log.
type ActivityHandler struct {
	service service.ActivityServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service service.ActivityServicer) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List godoc
// @Summary      List activity
// @Description  Return the user's activity entries, newest first
// @Tags         activity
// @Produce      json
// @Success      200  {object}  response.Response{data=models.ActivityListResponse}
// @Failure      401  {object}  response.Response
// @Security     BearerAuth
// @Router       /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	entries, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, models.ActivityListResponse{Items: entries})
}

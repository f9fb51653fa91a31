package handler

import (
	"errors"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/middleware"
	"taskflow/internal/service"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service service.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service service.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary      List notifications
// @Description  Return the user's notifications, newest first, with the unread count
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=models.NotificationListResponse}
// @Failure      401  {object}  response.Response
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	result, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Tags         notifications
// @Param        id  path  string  true  "Notification ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := middleware.GetActor(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id format")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotificationNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, apperrors.ErrUnauthorized):
			response.Unauthorized(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.NoContent(c)
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Success      204  "No Content"
// @Failure      401  {object}  response.Response
// @Security     BearerAuth
// @Router       /notifications/read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := middleware.GetActor(c)

	if err := h.service.MarkAllRead(c.Request.Context(), actor); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

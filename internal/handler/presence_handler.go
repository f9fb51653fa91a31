package handler

import (
	"taskflow/internal/middleware"
	"taskflow/internal/presence"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// PresenceHandler handles HTTP requests for presence tracking.
type PresenceHandler struct {
	tracker *presence.Tracker
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(tracker *presence.Tracker) *PresenceHandler {
	return &PresenceHandler{tracker: tracker}
}

// Heartbeat godoc
// @Summary      Presence heartbeat
// @Description  Refresh the caller's online marker. Without heartbeats the marker expires and the user is considered disconnected.
// @Tags         presence
// @Success      204  "No Content"
// @Failure      401  {object}  response.Response
// @Security     BearerAuth
// @Router       /presence/heartbeat [put]
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	if err := h.tracker.Heartbeat(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}

	response.NoContent(c)
}

// Online godoc
// @Summary      List online users
// @Tags         presence
// @Produce      json
// @Success      200  {object}  response.Response{data=[]presence.Status}
// @Security     BearerAuth
// @Router       /presence [get]
func (h *PresenceHandler) Online(c *gin.Context) {
	statuses, err := h.tracker.Online(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, statuses)
}

// Get godoc
// @Summary      Get a user's presence
// @Tags         presence
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=presence.Status}
// @Security     BearerAuth
// @Router       /presence/{userId} [get]
func (h *PresenceHandler) Get(c *gin.Context) {
	status, err := h.tracker.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, status)
}

package middleware

import (
	"taskflow/internal/models"
	"taskflow/internal/service"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys for the session actor
const (
	ActorKey = "actor"
)

// Session returns a middleware that resolves the authenticated user ID into
// a full profile and stores it for handlers. Must run after Auth. The
// profile load degrades to defaults inside the service, so this middleware
// only rejects malformed IDs.
func Session(users service.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := GetUserID(c)
		if userIDStr == "" {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			response.Unauthorized(c, "invalid user id format")
			c.Abort()
			return
		}

		actor := users.CurrentProfile(c.Request.Context(), userID)
		c.Set(ActorKey, actor)

		c.Next()
	}
}

// GetActor retrieves the session actor from the context. Returns nil when
// the session middleware did not run.
func GetActor(c *gin.Context) *models.User {
	actor, exists := c.Get(ActorKey)
	if !exists {
		return nil
	}
	return actor.(*models.User)
}

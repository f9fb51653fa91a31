package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/models"
	"taskflow/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSession(t *testing.T) {
	t.Run("resolves actor from authenticated user ID", func(t *testing.T) {
		userID := primitive.NewObjectID()
		profile := &models.User{ID: userID, Role: models.RoleLead, DisplayName: "Dana Lee"}

		users := &mocks.MockUserService{
			CurrentProfileFunc: func(ctx context.Context, id primitive.ObjectID) *models.User {
				assert.Equal(t, userID, id)
				return profile
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(UserIDKey, userID.Hex())

		Session(users)(c)

		require.False(t, c.IsAborted())
		actor := GetActor(c)
		require.NotNil(t, actor)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, models.RoleLead, actor.Role)
	})

	t.Run("rejects when no user ID in context", func(t *testing.T) {
		users := &mocks.MockUserService{}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Session(users)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed user ID", func(t *testing.T) {
		users := &mocks.MockUserService{}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(UserIDKey, "not-a-hex-id")

		Session(users)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("degraded profile still produces an actor", func(t *testing.T) {
		userID := primitive.NewObjectID()

		// The default mock behavior mirrors the service degrading to
		// member-level defaults on an unreadable record.
		users := &mocks.MockUserService{}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(UserIDKey, userID.Hex())

		Session(users)(c)

		require.False(t, c.IsAborted())
		actor := GetActor(c)
		require.NotNil(t, actor)
		assert.Equal(t, models.RoleMember, actor.Role)
	})
}

func TestGetActor(t *testing.T) {
	t.Run("returns nil when session middleware did not run", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		assert.Nil(t, GetActor(c))
	})
}

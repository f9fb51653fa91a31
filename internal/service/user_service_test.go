package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserService_CurrentProfile(t *testing.T) {
	t.Run("serves from cache when present", func(t *testing.T) {
		userID := primitive.NewObjectID()
		repoHit := false
		cache := &fakeCache{
			GetFunc: func(ctx context.Context, key string, dest interface{}) (bool, error) {
				user := dest.(*models.User)
				*user = models.User{ID: userID, Role: models.RoleLead}
				return true, nil
			},
		}
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				repoHit = true
				return nil, nil
			},
		}

		svc := NewUserService(userRepo, cache, &captureEffects{})

		profile := svc.CurrentProfile(context.Background(), userID)

		assert.Equal(t, models.RoleLead, profile.Role)
		assert.False(t, repoHit)
	})

	t.Run("loads and caches on a miss", func(t *testing.T) {
		userID := primitive.NewObjectID()
		var cachedKey string
		cache := &fakeCache{
			SetFunc: func(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
				cachedKey = key
				return nil
			},
		}
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, Role: models.RoleLead}, nil
			},
		}

		svc := NewUserService(userRepo, cache, &captureEffects{})

		profile := svc.CurrentProfile(context.Background(), userID)

		assert.Equal(t, models.RoleLead, profile.Role)
		assert.Contains(t, cachedKey, userID.Hex())
	})

	t.Run("unreadable record degrades to member defaults", func(t *testing.T) {
		userID := primitive.NewObjectID()
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return nil, errors.New("document corrupted")
			},
		}

		svc := NewUserService(userRepo, &fakeCache{}, &captureEffects{})

		profile := svc.CurrentProfile(context.Background(), userID)

		require.NotNil(t, profile)
		assert.Equal(t, userID, profile.ID)
		assert.Equal(t, models.RoleMember, profile.Role)
		assert.Equal(t, models.Stats{}, profile.Stats)
		assert.Equal(t, models.DefaultSettings(), profile.Settings)
	})
}

func TestUserService_UpdateSettings(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("merges partial changes", func(t *testing.T) {
		var written models.Settings
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, Settings: models.DefaultSettings()}, nil
			},
			UpdateSettingsFunc: func(ctx context.Context, id primitive.ObjectID, settings models.Settings) error {
				written = settings
				return nil
			},
		}

		svc := NewUserService(userRepo, &fakeCache{}, &captureEffects{})

		theme := "dark"
		user, err := svc.UpdateSettings(context.Background(), userID, &models.UpdateSettingsRequest{Theme: &theme})

		require.NoError(t, err)
		assert.Equal(t, "dark", written.Theme)
		// Untouched fields keep their defaults.
		assert.True(t, written.Notifications)
		assert.True(t, written.EmailNotifications)
		assert.Equal(t, "dark", user.Settings.Theme)
	})

	t.Run("invalidates the cached profile", func(t *testing.T) {
		cache := &fakeCache{}
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: userID, Settings: models.DefaultSettings()}, nil
			},
		}

		svc := NewUserService(userRepo, cache, &captureEffects{})

		notifications := false
		_, err := svc.UpdateSettings(context.Background(), userID, &models.UpdateSettingsRequest{Notifications: &notifications})

		require.NoError(t, err)
		require.Len(t, cache.deleted, 1)
		assert.Contains(t, cache.deleted[0], userID.Hex())
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	targetID := primitive.NewObjectID()

	t.Run("admin can set any role", func(t *testing.T) {
		var newRole string
		effects := &captureEffects{}
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: targetID, Email: "bob@example.com", Role: models.RoleMember}, nil
			},
			UpdateRoleFunc: func(ctx context.Context, id primitive.ObjectID, role string) error {
				newRole = role
				return nil
			},
		}

		svc := NewUserService(userRepo, &fakeCache{}, effects)

		user, err := svc.UpdateRole(context.Background(), admin, targetID, models.RoleLead)

		require.NoError(t, err)
		assert.Equal(t, models.RoleLead, newRole)
		assert.Equal(t, models.RoleLead, user.Role)
		require.Len(t, effects.activities, 1)
		assert.Equal(t, models.ActivityAdminRoleUpdate, effects.activities[0].Action)
		require.Len(t, effects.notifications, 1)
		assert.Equal(t, targetID, effects.notifications[0].UserID)
	})

	t.Run("non-admins are rejected", func(t *testing.T) {
		lead := &models.User{ID: primitive.NewObjectID(), Role: models.RoleLead}

		svc := NewUserService(&fakeUserRepo{}, &fakeCache{}, &captureEffects{})

		_, err := svc.UpdateRole(context.Background(), lead, targetID, models.RoleAdmin)

		assert.ErrorIs(t, err, apperrors.ErrAdminOnly)
	})

	t.Run("setting the same role is a no-op", func(t *testing.T) {
		effects := &captureEffects{}
		userRepo := &fakeUserRepo{
			FindByIDFunc: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: targetID, Role: models.RoleLead}, nil
			},
			UpdateRoleFunc: func(ctx context.Context, id primitive.ObjectID, role string) error {
				t.Fatal("role must not change")
				return nil
			},
		}

		svc := NewUserService(userRepo, &fakeCache{}, effects)

		user, err := svc.UpdateRole(context.Background(), admin, targetID, models.RoleLead)

		require.NoError(t, err)
		assert.Equal(t, models.RoleLead, user.Role)
		assert.Empty(t, effects.activities)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		member := &models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}

		svc := NewUserService(&fakeUserRepo{}, &fakeCache{}, &captureEffects{})

		_, err := svc.ListUsers(context.Background(), member, 10)

		assert.ErrorIs(t, err, apperrors.ErrAdminOnly)
	})

	t.Run("clamps an unreasonable limit", func(t *testing.T) {
		admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
		var gotLimit int
		userRepo := &fakeUserRepo{
			FindAllFunc: func(ctx context.Context, limit int) ([]models.User, error) {
				gotLimit = limit
				return []models.User{}, nil
			},
		}

		svc := NewUserService(userRepo, &fakeCache{}, &captureEffects{})

		_, err := svc.ListUsers(context.Background(), admin, 100000)

		require.NoError(t, err)
		assert.Equal(t, 100, gotLimit)
	})
}

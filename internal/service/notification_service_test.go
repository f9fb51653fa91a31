package service

import (
	"context"
	"errors"
	"testing"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationService_List(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}

	t.Run("returns items with the unread count", func(t *testing.T) {
		repo := &fakeNotificationRepo{
			FindByUserIDFunc: func(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
				return []models.Notification{
					{UserID: userID, Read: false},
					{UserID: userID, Read: true},
				}, nil
			},
			CountUnreadFunc: func(ctx context.Context, userID primitive.ObjectID) (int, error) {
				return 1, nil
			},
		}

		svc := NewNotificationService(repo)

		result, err := svc.List(context.Background(), actor)

		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, 1, result.UnreadCount)
	})

	t.Run("storage failure degrades to an empty list", func(t *testing.T) {
		repo := &fakeNotificationRepo{
			FindByUserIDFunc: func(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
				return nil, errors.New("timeout")
			},
		}

		svc := NewNotificationService(repo)

		result, err := svc.List(context.Background(), actor)

		require.NoError(t, err)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.UnreadCount)
	})

	t.Run("nil actor is unauthorized", func(t *testing.T) {
		svc := NewNotificationService(&fakeNotificationRepo{})

		_, err := svc.List(context.Background(), nil)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID(), Role: models.RoleMember}

	t.Run("scopes the write to the actor", func(t *testing.T) {
		notifID := primitive.NewObjectID()
		var gotID, gotUser primitive.ObjectID
		repo := &fakeNotificationRepo{
			MarkReadFunc: func(ctx context.Context, id, userID primitive.ObjectID) error {
				gotID, gotUser = id, userID
				return nil
			},
		}

		svc := NewNotificationService(repo)

		err := svc.MarkRead(context.Background(), actor, notifID)

		require.NoError(t, err)
		assert.Equal(t, notifID, gotID)
		assert.Equal(t, actor.ID, gotUser)
	})

	t.Run("unknown notification surfaces", func(t *testing.T) {
		repo := &fakeNotificationRepo{
			MarkReadFunc: func(ctx context.Context, id, userID primitive.ObjectID) error {
				return apperrors.ErrNotificationNotFound
			},
		}

		svc := NewNotificationService(repo)

		err := svc.MarkRead(context.Background(), actor, primitive.NewObjectID())

		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	})
}

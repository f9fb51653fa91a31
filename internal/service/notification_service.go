package service

import (
	"context"
	"log"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const notificationListLimit = 50

// NotificationService handles reading and acknowledging notifications.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the user's notifications with their unread count. A storage
// failure degrades to an empty list.
func (s *NotificationService) List(ctx context.Context, actor *models.User) (*models.NotificationListResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	items, err := s.repo.FindByUserID(ctx, actor.ID, notificationListLimit)
	if err != nil {
		log.Printf("Failed to list notifications for user %s: %v", actor.ID.Hex(), err)
		return &models.NotificationListResponse{Items: []models.Notification{}}, nil
	}

	unread, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		log.Printf("Failed to count unread notifications for user %s: %v", actor.ID.Hex(), err)
		unread = 0
	}

	return &models.NotificationListResponse{Items: items, UnreadCount: unread}, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	return s.repo.MarkRead(ctx, id, actor.ID)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *models.User) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	return s.repo.MarkAllRead(ctx, actor.ID)
}

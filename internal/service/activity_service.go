package service

import (
	"context"
	"log"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"
)

const activityListLimit = 50

// ActivityService reads the global activity log.
type ActivityService struct {
	repo repository.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// List returns the actor's activity entries, newest first. A storage
// failure degrades to an empty list.
func (s *ActivityService) List(ctx context.Context, actor *models.User) ([]models.ActivityEntry, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	entries, err := s.repo.FindByUserID(ctx, actor.ID, activityListLimit)
	if err != nil {
		log.Printf("Failed to list activity for user %s: %v", actor.ID.Hex(), err)
		return []models.ActivityEntry{}, nil
	}
	return entries, nil
}

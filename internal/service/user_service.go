package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskflow/internal/cache"
	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const profileCacheTTL = 5 * time.Minute

// UserService handles user profile operations.
type UserService struct {
	userRepo repository.UserRepository
	cache    cache.Cache
	effects  Effects
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, c cache.Cache, effects Effects) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    c,
		effects:  effects,
	}
}

// GetUser returns a user's profile by ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// CurrentProfile returns the profile backing the caller's session. It is
// read through the cache, and when the stored record cannot be read at
// all it degrades to a synthesized member profile with defaults rather
// than failing the session.
func (s *UserService) CurrentProfile(ctx context.Context, id primitive.ObjectID) *models.User {
	key := cache.ProfileCacheKey(id.Hex())

	var cached models.User
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("Profile cache read failed for user %s: %v", id.Hex(), err)
	}
	if found {
		return &cached
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("Failed to load profile for user %s, using defaults: %v", id.Hex(), err)
		return &models.User{
			ID:       id,
			Role:     models.RoleMember,
			Stats:    models.Stats{},
			Settings: models.DefaultSettings(),
		}
	}

	if err := s.cache.Set(ctx, key, user, profileCacheTTL); err != nil {
		log.Printf("Profile cache write failed for user %s: %v", id.Hex(), err)
	}

	return user
}

// UpdateSettings merges the given preference changes into the user's
// settings. Omitted fields keep their current value.
func (s *UserService) UpdateSettings(ctx context.Context, id primitive.ObjectID, req *models.UpdateSettingsRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	settings := user.Settings
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}

	if err := s.userRepo.UpdateSettings(ctx, id, settings); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, id)

	user.Settings = settings
	return user, nil
}

// UpdateRole sets a user's role to an explicit value. Admin only; unlike
// earned promotions this may also demote.
func (s *UserService) UpdateRole(ctx context.Context, actor *models.User, targetID primitive.ObjectID, role string) (*models.User, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrAdminOnly
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.Role == role {
		return target, nil
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, targetID)

	s.effects.LogActivity(&models.ActivityEntry{
		UserID:       actor.ID,
		Action:       models.ActivityAdminRoleUpdate,
		Details:      fmt.Sprintf("Changed role of %s from %s to %s", target.Email, target.Role, role),
		TargetUserID: &targetID,
	})
	s.effects.Notify(&models.Notification{
		UserID:  targetID,
		Type:    models.NotificationRoleChange,
		Title:   "Role updated",
		Message: fmt.Sprintf("An administrator changed your role to %s.", role),
	})

	now := time.Now()
	target.Role = role
	target.RoleUpgradedAt = &now
	return target, nil
}

// ListUsers returns all user profiles. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User, limit int) ([]models.User, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrAdminOnly
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.userRepo.FindAll(ctx, limit)
}

func (s *UserService) invalidateProfile(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, cache.ProfileCacheKey(id.Hex())); err != nil {
		log.Printf("Failed to invalidate profile cache for user %s: %v", id.Hex(), err)
	}
}

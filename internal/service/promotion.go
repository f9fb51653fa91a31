package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskflow/internal/cache"
	"taskflow/internal/models"
	"taskflow/internal/repository"
)

// Promotion thresholds. Roles only ever move upward.
const (
	LeadPromotionThreshold  = 5  // team tasks completed
	AdminPromotionThreshold = 20 // groups managed
)

// PromotionEngine re-evaluates a user's role against their stats and
// upgrades it when a threshold is crossed. Checks are idempotent: a
// user already at or above the earned role is left untouched.
type PromotionEngine struct {
	userRepo repository.UserRepository
	cache    cache.Cache
	effects  Effects
}

func NewPromotionEngine(userRepo repository.UserRepository, c cache.Cache, effects Effects) *PromotionEngine {
	return &PromotionEngine{
		userRepo: userRepo,
		cache:    c,
		effects:  effects,
	}
}

// Check inspects the user's stats and applies at most the next earned
// promotion. It returns the new role and whether a promotion happened.
func (e *PromotionEngine) Check(ctx context.Context, user *models.User) (string, bool, error) {
	if user == nil {
		return "", false, nil
	}

	role := user.Role
	promoted := false

	if role == models.RoleMember && user.Stats.TeamTasksCompleted >= LeadPromotionThreshold {
		if err := e.promote(ctx, user, models.RoleLead); err != nil {
			return role, false, err
		}
		role = models.RoleLead
		promoted = true
	}

	if role == models.RoleLead && user.Stats.GroupsManaged >= AdminPromotionThreshold {
		if err := e.promote(ctx, user, models.RoleAdmin); err != nil {
			return role, promoted, err
		}
		role = models.RoleAdmin
		promoted = true
	}

	return role, promoted, nil
}

func (e *PromotionEngine) promote(ctx context.Context, user *models.User, newRole string) error {
	if err := e.userRepo.UpdateRole(ctx, user.ID, newRole); err != nil {
		return fmt.Errorf("failed to upgrade role: %w", err)
	}

	if err := e.cache.Delete(ctx, cache.ProfileCacheKey(user.ID.Hex())); err != nil {
		log.Printf("Failed to invalidate profile cache for user %s: %v", user.ID.Hex(), err)
	}

	e.effects.LogActivity(&models.ActivityEntry{
		UserID:  user.ID,
		Action:  models.ActivityRoleUpgrade,
		Details: fmt.Sprintf("Promoted from %s to %s", user.Role, newRole),
	})
	e.effects.Notify(&models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationRoleChange,
		Title:   "Role upgraded",
		Message: fmt.Sprintf("Congratulations! You have been promoted to %s.", newRole),
	})

	now := time.Now()
	user.Role = newRole
	user.RoleUpgradedAt = &now
	log.Printf("User %s promoted to %s", user.ID.Hex(), newRole)
	return nil
}

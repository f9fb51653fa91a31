// Package service contains business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskflow/internal/cache"
	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"
	"taskflow/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresenceMarker marks users online or offline as their session starts and
// ends. Failures are tolerated; presence is advisory.
type PresenceMarker interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userRepo        repository.UserRepository
	cache           cache.Cache
	jwtManager      *auth.JWTManager
	presence        PresenceMarker
	effects         Effects
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	adminSecretKey  string
}

// AuthServiceConfig bundles the knobs AuthService needs from application
// config.
type AuthServiceConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AdminSecretKey  string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	c cache.Cache,
	jwtManager *auth.JWTManager,
	presence PresenceMarker,
	effects Effects,
	cfg AuthServiceConfig,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		cache:           c,
		jwtManager:      jwtManager,
		presence:        presence,
		effects:         effects,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		adminSecretKey:  cfg.AdminSecretKey,
	}
}

// Register creates a new user profile and opens a session. Every new
// account starts as a member with zeroed stats and default settings.
func (s *AuthService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    hashed,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: fmt.Sprintf("%s %s", req.FirstName, req.LastName),
		Role:        models.RoleMember,
		Stats:       models.Stats{},
		Settings:    models.DefaultSettings(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to update last login for user %s: %v", user.ID.Hex(), err)
	}

	return s.openSession(ctx, user)
}

// AdminLogin verifies credentials and grants admin access. An account that
// is not yet an admin must present the configured secret key and is
// upgraded in place on success.
func (s *AuthService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error) {
	resp, err := s.Login(ctx, &models.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}

	if resp.User.Role == models.RoleAdmin {
		return resp, nil
	}

	if s.adminSecretKey == "" || req.SecretKey != s.adminSecretKey {
		return nil, apperrors.ErrInvalidSecretKey
	}

	if err := s.userRepo.UpdateRole(ctx, resp.User.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, cache.ProfileCacheKey(resp.User.ID.Hex())); err != nil {
		log.Printf("Failed to invalidate profile cache for user %s: %v", resp.User.ID.Hex(), err)
	}

	s.effects.LogActivity(&models.ActivityEntry{
		UserID:  resp.User.ID,
		Action:  models.ActivityRoleUpgrade,
		Details: fmt.Sprintf("Promoted from %s to admin via admin console", resp.User.Role),
	})

	resp.User.Role = models.RoleAdmin
	return resp, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	userID, err := s.cache.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtManager.GenerateToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
	}, nil
}

// Logout revokes the refresh token and marks the user offline.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID, refreshToken string) error {
	if err := s.cache.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	if err := s.presence.SetOffline(ctx, userID.Hex()); err != nil {
		log.Printf("Failed to mark user %s offline: %v", userID.Hex(), err)
	}
	if err := s.cache.Delete(ctx, cache.ProfileCacheKey(userID.Hex())); err != nil {
		log.Printf("Failed to invalidate profile cache for user %s: %v", userID.Hex(), err)
	}

	return nil
}

// openSession issues the token pair and marks the user online.
func (s *AuthService) openSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.cache.SetRefreshToken(ctx, refreshToken, user.ID.Hex(), s.refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	if err := s.presence.SetOnline(ctx, user.ID.Hex()); err != nil {
		log.Printf("Failed to mark user %s online: %v", user.ID.Hex(), err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

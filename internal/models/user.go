// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile role constants, strictly ordered by privilege.
const (
	RoleMember = "member"
	RoleLead   = "lead"
	RoleAdmin  = "admin"
)

// roleRank maps roles to their privilege order.
var roleRank = map[string]int{
	RoleMember: 0,
	RoleLead:   1,
	RoleAdmin:  2,
}

// RoleAtLeast reports whether role carries at least the privilege of min.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// Stat field names as stored under the profile's stats document.
const (
	StatPersonalTasksCreated   = "personalTasksCreated"
	StatPersonalTasksCompleted = "personalTasksCompleted"
	StatTeamTasksCreated       = "teamTasksCreated"
	StatTeamTasksCompleted     = "teamTasksCompleted"
	StatGroupsCreated          = "groupsCreated"
	StatGroupsManaged          = "groupsManaged"
)

// Stats holds the named counters tracked per user. They drive both the
// dashboard and the role promotion thresholds.
type Stats struct {
	PersonalTasksCreated   int `json:"personalTasksCreated" bson:"personalTasksCreated"`
	PersonalTasksCompleted int `json:"personalTasksCompleted" bson:"personalTasksCompleted"`
	TeamTasksCreated       int `json:"teamTasksCreated" bson:"teamTasksCreated"`
	TeamTasksCompleted     int `json:"teamTasksCompleted" bson:"teamTasksCompleted"`
	GroupsCreated          int `json:"groupsCreated" bson:"groupsCreated"`
	GroupsManaged          int `json:"groupsManaged" bson:"groupsManaged"`
}

// Settings holds per-user preferences.
type Settings struct {
	Theme              string `json:"theme" bson:"theme" example:"light"`
	Notifications      bool   `json:"notifications" bson:"notifications"`
	EmailNotifications bool   `json:"emailNotifications" bson:"emailNotifications"`
}

// DefaultSettings returns the settings assigned to a fresh profile.
func DefaultSettings() Settings {
	return Settings{Theme: "light", Notifications: true, EmailNotifications: true}
}

// User represents a user profile in the system.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Email          string             `json:"email" bson:"email" example:"user@example.com"`
	Password       string             `json:"-" bson:"password"` // "-" = never include in JSON response
	FirstName      string             `json:"firstName" bson:"firstName" example:"John"`
	LastName       string             `json:"lastName" bson:"lastName" example:"Doe"`
	DisplayName    string             `json:"displayName" bson:"displayName" example:"John Doe"`
	Role           string             `json:"role" bson:"role" example:"member"`
	Stats          Stats              `json:"stats" bson:"stats"`
	Settings       Settings           `json:"settings" bson:"settings"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
	LastLogin      time.Time          `json:"lastLogin" bson:"lastLogin"`
	RoleUpgradedAt *time.Time         `json:"roleUpgradedAt,omitempty" bson:"roleUpgradedAt,omitempty"`
}

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required,min=6" example:"secret123"`
	FirstName string `json:"firstName" binding:"required,min=1" example:"John"`
	LastName  string `json:"lastName" binding:"required,min=1" example:"Doe"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AdminLoginRequest is the login payload for the admin console. The secret
// key is only checked when the account is not yet an admin.
type AdminLoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	SecretKey string `json:"secretKey"`
}

// AuthResponse is the response after successful registration or login.
type AuthResponse struct {
	AccessToken  string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	User         User   `json:"user"`
}

// RefreshRequest is the payload for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshResponse is the response for a token refresh.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// LogoutRequest is the payload for logging out.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateSettingsRequest is the payload for updating user preferences.
type UpdateSettingsRequest struct {
	Theme              *string `json:"theme" binding:"omitempty,oneof=light dark"`
	Notifications      *bool   `json:"notifications"`
	EmailNotifications *bool   `json:"emailNotifications"`
}

// UpdateRoleRequest is the payload for an admin changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member lead admin" example:"lead"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Items []User `json:"items"`
}

package service

import (
	"context"

	"taskflow/internal/models"
	"taskflow/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)
	Logout(ctx context.Context, userID primitive.ObjectID, refreshToken string) error
}

// UserServicer defines the interface for user profile operations.
type UserServicer interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CurrentProfile(ctx context.Context, id primitive.ObjectID) *models.User
	UpdateSettings(ctx context.Context, id primitive.ObjectID, req *models.UpdateSettingsRequest) (*models.User, error)
	UpdateRole(ctx context.Context, actor *models.User, targetID primitive.ObjectID, role string) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User, limit int) ([]models.User, error)
}

// TaskServicer defines the interface for task lifecycle operations.
type TaskServicer interface {
	Create(ctx context.Context, actor *models.User, req *models.CreateTaskRequest, files []storage.Upload) (*models.CreateTaskResponse, error)
	Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Task, error)
	Update(ctx context.Context, actor *models.User, id primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	List(ctx context.Context, actor *models.User, filter string) ([]models.Task, error)
	Watch(ctx context.Context, actor *models.User) (<-chan models.TaskChange, error)
}

// TeamServicer defines the interface for team operations.
type TeamServicer interface {
	Create(ctx context.Context, actor *models.User, req *models.CreateTeamRequest) (*models.Team, error)
	Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Team, error)
	List(ctx context.Context, actor *models.User) ([]models.Team, error)
	Invite(ctx context.Context, actor *models.User, teamID primitive.ObjectID, email string) (*models.Team, error)
}

// NotificationServicer defines the interface for notification operations.
type NotificationServicer interface {
	List(ctx context.Context, actor *models.User) (*models.NotificationListResponse, error)
	MarkRead(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, actor *models.User) error
}

// ActivityServicer defines the interface for the global activity log.
type ActivityServicer interface {
	List(ctx context.Context, actor *models.User) ([]models.ActivityEntry, error)
}

// Compile-time interface checks
var (
	_ AuthServicer         = (*AuthService)(nil)
	_ UserServicer         = (*UserService)(nil)
	_ TaskServicer         = (*TaskService)(nil)
	_ TeamServicer         = (*TeamService)(nil)
	_ NotificationServicer = (*NotificationService)(nil)
	_ ActivityServicer     = (*ActivityService)(nil)
)

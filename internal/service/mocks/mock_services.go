// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"taskflow/internal/models"
	"taskflow/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	RegisterFunc   func(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)
	LoginFunc      func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	AdminLoginFunc func(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error)
	RefreshFunc    func(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)
	LogoutFunc     func(ctx context.Context, userID primitive.ObjectID, refreshToken string) error
}

func (m *MockAuthService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, userID primitive.ObjectID, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, refreshToken)
	}
	return nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	GetUserFunc        func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CurrentProfileFunc func(ctx context.Context, id primitive.ObjectID) *models.User
	UpdateSettingsFunc func(ctx context.Context, id primitive.ObjectID, req *models.UpdateSettingsRequest) (*models.User, error)
	UpdateRoleFunc     func(ctx context.Context, actor *models.User, targetID primitive.ObjectID, role string) (*models.User, error)
	ListUsersFunc      func(ctx context.Context, actor *models.User, limit int) ([]models.User, error)
}

func (m *MockUserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) CurrentProfile(ctx context.Context, id primitive.ObjectID) *models.User {
	if m.CurrentProfileFunc != nil {
		return m.CurrentProfileFunc(ctx, id)
	}
	return &models.User{ID: id, Role: models.RoleMember, Settings: models.DefaultSettings()}
}

func (m *MockUserService) UpdateSettings(ctx context.Context, id primitive.ObjectID, req *models.UpdateSettingsRequest) (*models.User, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockUserService) UpdateRole(ctx context.Context, actor *models.User, targetID primitive.ObjectID, role string) (*models.User, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, actor, targetID, role)
	}
	return nil, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, actor *models.User, limit int) ([]models.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, actor, limit)
	}
	return nil, nil
}

// MockTaskService is a mock implementation of TaskServicer.
type MockTaskService struct {
	CreateFunc func(ctx context.Context, actor *models.User, req *models.CreateTaskRequest, files []storage.Upload) (*models.CreateTaskResponse, error)
	GetFunc    func(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Task, error)
	UpdateFunc func(ctx context.Context, actor *models.User, id primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error)
	DeleteFunc func(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	ListFunc   func(ctx context.Context, actor *models.User, filter string) ([]models.Task, error)
	WatchFunc  func(ctx context.Context, actor *models.User) (<-chan models.TaskChange, error)
}

func (m *MockTaskService) Create(ctx context.Context, actor *models.User, req *models.CreateTaskRequest, files []storage.Upload) (*models.CreateTaskResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, req, files)
	}
	return nil, nil
}

func (m *MockTaskService) Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Task, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, nil
}

func (m *MockTaskService) Update(ctx context.Context, actor *models.User, id primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, req)
	}
	return nil, nil
}

func (m *MockTaskService) Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockTaskService) List(ctx context.Context, actor *models.User, filter string) ([]models.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return nil, nil
}

func (m *MockTaskService) Watch(ctx context.Context, actor *models.User) (<-chan models.TaskChange, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, actor)
	}
	return nil, nil
}

// MockTeamService is a mock implementation of TeamServicer.
type MockTeamService struct {
	CreateFunc func(ctx context.Context, actor *models.User, req *models.CreateTeamRequest) (*models.Team, error)
	GetFunc    func(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Team, error)
	ListFunc   func(ctx context.Context, actor *models.User) ([]models.Team, error)
	InviteFunc func(ctx context.Context, actor *models.User, teamID primitive.ObjectID, email string) (*models.Team, error)
}

func (m *MockTeamService) Create(ctx context.Context, actor *models.User, req *models.CreateTeamRequest) (*models.Team, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, req)
	}
	return nil, nil
}

func (m *MockTeamService) Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Team, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, nil
}

func (m *MockTeamService) List(ctx context.Context, actor *models.User) ([]models.Team, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return nil, nil
}

func (m *MockTeamService) Invite(ctx context.Context, actor *models.User, teamID primitive.ObjectID, email string) (*models.Team, error) {
	if m.InviteFunc != nil {
		return m.InviteFunc(ctx, actor, teamID, email)
	}
	return nil, nil
}

// MockNotificationService is a mock implementation of NotificationServicer.
type MockNotificationService struct {
	ListFunc        func(ctx context.Context, actor *models.User) (*models.NotificationListResponse, error)
	MarkReadFunc    func(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	MarkAllReadFunc func(ctx context.Context, actor *models.User) error
}

func (m *MockNotificationService) List(ctx context.Context, actor *models.User) (*models.NotificationListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return nil, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, actor *models.User) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, actor)
	}
	return nil
}

// MockActivityService is a mock implementation of ActivityServicer.
type MockActivityService struct {
	ListFunc func(ctx context.Context, actor *models.User) ([]models.ActivityEntry, error)
}

func (m *MockActivityService) List(ctx context.Context, actor *models.User) ([]models.ActivityEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return nil, nil
}

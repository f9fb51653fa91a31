package service

import (
	"context"
	"sync"
	"time"

	"taskflow/internal/models"
	"taskflow/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hand-written function-field fakes for the repository and infrastructure
// interfaces the services depend on. Unset fields return zero values.

type fakeUserRepo struct {
	CreateFunc          func(ctx context.Context, user *models.User) error
	FindByIDFunc        func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	FindAllFunc         func(ctx context.Context, limit int) ([]models.User, error)
	UpdateSettingsFunc  func(ctx context.Context, id primitive.ObjectID, settings models.Settings) error
	UpdateRoleFunc      func(ctx context.Context, id primitive.ObjectID, role string) error
	UpdateLastLoginFunc func(ctx context.Context, id primitive.ObjectID) error
	IncrementStatFunc   func(ctx context.Context, id primitive.ObjectID, stat string, delta int) (*models.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.FindByEmailFunc != nil {
		return f.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit int) ([]models.User, error) {
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateSettings(ctx context.Context, id primitive.ObjectID, settings models.Settings) error {
	if f.UpdateSettingsFunc != nil {
		return f.UpdateSettingsFunc(ctx, id, settings)
	}
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if f.UpdateRoleFunc != nil {
		return f.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	if f.UpdateLastLoginFunc != nil {
		return f.UpdateLastLoginFunc(ctx, id)
	}
	return nil
}

func (f *fakeUserRepo) IncrementStat(ctx context.Context, id primitive.ObjectID, stat string, delta int) (*models.User, error) {
	if f.IncrementStatFunc != nil {
		return f.IncrementStatFunc(ctx, id, stat, delta)
	}
	return &models.User{ID: id}, nil
}

type fakeTaskRepo struct {
	CreateFunc      func(ctx context.Context, task *models.Task) error
	FindByIDFunc    func(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindForUserFunc func(ctx context.Context, userID primitive.ObjectID, filter string) ([]models.Task, error)
	ApplyUpdateFunc func(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TaskActivity) (*models.Task, error)
	DeleteFunc      func(ctx context.Context, id primitive.ObjectID) error
	WatchFunc       func(ctx context.Context, ownerID primitive.ObjectID) (<-chan models.TaskChange, error)
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, task)
	}
	task.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeTaskRepo) FindForUser(ctx context.Context, userID primitive.ObjectID, filter string) ([]models.Task, error) {
	if f.FindForUserFunc != nil {
		return f.FindForUserFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (f *fakeTaskRepo) ApplyUpdate(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TaskActivity) (*models.Task, error) {
	if f.ApplyUpdateFunc != nil {
		return f.ApplyUpdateFunc(ctx, id, fields, entry)
	}
	return &models.Task{ID: id}, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeTaskRepo) Watch(ctx context.Context, ownerID primitive.ObjectID) (<-chan models.TaskChange, error) {
	if f.WatchFunc != nil {
		return f.WatchFunc(ctx, ownerID)
	}
	return nil, nil
}

type fakeTeamRepo struct {
	CreateFunc       func(ctx context.Context, team *models.Team) error
	FindByIDFunc     func(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByMemberFunc func(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error)
	AddMemberFunc    func(ctx context.Context, teamID, userID primitive.ObjectID) error
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, team)
	}
	team.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeTeamRepo) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	if f.FindByMemberFunc != nil {
		return f.FindByMemberFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, teamID, userID)
	}
	return nil
}

type fakeNotificationRepo struct {
	CreateFunc       func(ctx context.Context, notification *models.Notification) error
	FindByUserIDFunc func(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error)
	CountUnreadFunc  func(ctx context.Context, userID primitive.ObjectID) (int, error)
	MarkReadFunc     func(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllReadFunc  func(ctx context.Context, userID primitive.ObjectID) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, notification)
	}
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
	if f.FindByUserIDFunc != nil {
		return f.FindByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID primitive.ObjectID) (int, error) {
	if f.CountUnreadFunc != nil {
		return f.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	if f.MarkReadFunc != nil {
		return f.MarkReadFunc(ctx, id, userID)
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	if f.MarkAllReadFunc != nil {
		return f.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

type fakeActivityRepo struct {
	CreateFunc       func(ctx context.Context, entry *models.ActivityEntry) error
	FindByUserIDFunc func(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.ActivityEntry, error)
}

func (f *fakeActivityRepo) Create(ctx context.Context, entry *models.ActivityEntry) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, entry)
	}
	return nil
}

func (f *fakeActivityRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.ActivityEntry, error) {
	if f.FindByUserIDFunc != nil {
		return f.FindByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

type fakeCache struct {
	SetFunc                func(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetFunc                func(ctx context.Context, key string, dest interface{}) (bool, error)
	DeleteFunc             func(ctx context.Context, key string) error
	SetRefreshTokenFunc    func(ctx context.Context, token, userID string) error
	GetRefreshTokenFunc    func(ctx context.Context, token string) (string, error)
	DeleteRefreshTokenFunc func(ctx context.Context, token string) error

	mu      sync.Mutex
	deleted []string
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, key, value, ttl)
	}
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key, dest)
	}
	return false, nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, key)
	f.mu.Unlock()
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, key)
	}
	return nil
}

func (f *fakeCache) SetRefreshToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if f.SetRefreshTokenFunc != nil {
		return f.SetRefreshTokenFunc(ctx, token, userID)
	}
	return nil
}

func (f *fakeCache) GetRefreshToken(ctx context.Context, token string) (string, error) {
	if f.GetRefreshTokenFunc != nil {
		return f.GetRefreshTokenFunc(ctx, token)
	}
	return "", nil
}

func (f *fakeCache) DeleteRefreshToken(ctx context.Context, token string) error {
	if f.DeleteRefreshTokenFunc != nil {
		return f.DeleteRefreshTokenFunc(ctx, token)
	}
	return nil
}

type fakeAuthorizer struct {
	TaskFunc func(ctx context.Context, actor *models.User, task *models.Task, action string) (bool, error)
	TeamFunc func(ctx context.Context, actor *models.User, team *models.Team, action string) (bool, error)
}

func (f *fakeAuthorizer) CanPerformTask(ctx context.Context, actor *models.User, task *models.Task, action string) (bool, error) {
	if f.TaskFunc != nil {
		return f.TaskFunc(ctx, actor, task, action)
	}
	return true, nil
}

func (f *fakeAuthorizer) CanPerformTeam(ctx context.Context, actor *models.User, team *models.Team, action string) (bool, error) {
	if f.TeamFunc != nil {
		return f.TeamFunc(ctx, actor, team, action)
	}
	return true, nil
}

type fakeUploader struct {
	UploadFunc func(ctx context.Context, file storage.Upload, folder string) (*models.Attachment, error)

	mu    sync.Mutex
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, file storage.Upload, folder string) (*models.Attachment, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, file, folder)
	}
	return &models.Attachment{Name: file.Name, URL: "https://example.com/" + file.Name}, nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// captureEffects records emitted effects for assertions.
type captureEffects struct {
	mu            sync.Mutex
	notifications []*models.Notification
	activities    []*models.ActivityEntry
}

func (c *captureEffects) Notify(notification *models.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, notification)
}

func (c *captureEffects) LogActivity(entry *models.ActivityEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activities = append(c.activities, entry)
}

type fakePresence struct {
	online  []string
	offline []string
}

func (f *fakePresence) SetOnline(ctx context.Context, userID string) error {
	f.online = append(f.online, userID)
	return nil
}

func (f *fakePresence) SetOffline(ctx context.Context, userID string) error {
	f.offline = append(f.offline, userID)
	return nil
}

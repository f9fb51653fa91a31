package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"taskflow/internal/authz"
	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"
	"taskflow/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService handles task lifecycle operations.
type TaskService struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	authorizer authz.Authorizer
	uploader   storage.Uploader
	effects    Effects
	promoter   *PromotionEngine
	maxUpload  int64
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	authorizer authz.Authorizer,
	uploader storage.Uploader,
	effects Effects,
	promoter *PromotionEngine,
	maxUploadBytes int64,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
		uploader:   uploader,
		effects:    effects,
		promoter:   promoter,
		maxUpload:  maxUploadBytes,
	}
}

// Create creates a task owned by the actor. Attachments are uploaded
// concurrently; a failed upload becomes a warning on the response, never an
// error. Stat counting and the promotion check run best-effort after the
// task is stored.
func (s *TaskService) Create(ctx context.Context, actor *models.User, req *models.CreateTaskRequest, files []storage.Upload) (*models.CreateTaskResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusTodo,
		Priority:    models.PriorityMedium,
		OwnerID:     actor.ID,
		Version:     1,
		ActivityLog: []models.TaskActivity{{
			Action:    "created",
			UserID:    actor.ID,
			Timestamp: time.Now(),
		}},
	}

	if req.Status != "" {
		task.Status = models.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due date must be RFC 3339", apperrors.ErrInvalidTaskData)
		}
		task.DueDate = &due
	}

	assigneeIDs, err := parseObjectIDs(req.AssigneeIDs)
	if err != nil {
		return nil, err
	}
	if len(assigneeIDs) == 0 {
		// A task with nobody assigned defaults to the owner.
		assigneeIDs = []primitive.ObjectID{actor.ID}
	}
	task.AssigneeIDs = assigneeIDs

	if req.TeamID != "" {
		teamID, err := primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad team id %q", apperrors.ErrInvalidTaskData, req.TeamID)
		}
		task.TeamID = &teamID
	}

	attachments, warnings := s.uploadAll(ctx, files)
	task.Attachments = attachments

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	stat := models.StatPersonalTasksCreated
	if task.TeamID != nil {
		stat = models.StatTeamTasksCreated
	}
	s.bumpStat(ctx, actor.ID, stat)

	for _, assigneeID := range task.AssigneeIDs {
		if assigneeID == actor.ID {
			continue
		}
		s.effects.Notify(&models.Notification{
			UserID:  assigneeID,
			Type:    models.NotificationTaskAssigned,
			Title:   "New task assigned",
			Message: fmt.Sprintf("%s assigned you the task %q", actor.DisplayName, task.Title),
			TaskID:  &task.ID,
			TeamID:  task.TeamID,
		})
	}

	return &models.CreateTaskResponse{Task: *task, Warnings: warnings}, nil
}

// Get returns a task the actor is allowed to work on.
func (s *TaskService) Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorizer.CanPerformTask(ctx, actor, task, authz.ActionView)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	return task, nil
}

// Update applies a partial update. The version increments by exactly 1 and
// one activity entry is appended, atomically with the field changes. A
// transition into done bumps the actor's completion stat once.
func (s *TaskService) Update(ctx context.Context, actor *models.User, id primitive.ObjectID, req *models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorizer.CanPerformTask(ctx, actor, task, authz.ActionEdit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.AssigneeIDs != nil {
		ids, err := parseObjectIDs(req.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		fields["assigneeIds"] = ids
	}

	details := "Task updated"
	completed := false
	if req.Status != nil {
		newStatus := models.TaskStatus(*req.Status)
		fields["status"] = newStatus
		if newStatus != task.Status {
			details = fmt.Sprintf("Status changed from %s to %s", task.Status, newStatus)
		}
		completed = newStatus == models.StatusDone && task.Status != models.StatusDone
	}

	entry := models.TaskActivity{
		Action:    "updated",
		UserID:    actor.ID,
		Timestamp: time.Now(),
		Details:   details,
	}

	updated, err := s.taskRepo.ApplyUpdate(ctx, id, fields, entry)
	if err != nil {
		return nil, err
	}

	if completed {
		stat := models.StatPersonalTasksCompleted
		if task.TeamID != nil {
			stat = models.StatTeamTasksCompleted
		}
		s.bumpStat(ctx, actor.ID, stat)
	}

	if task.OwnerID != actor.ID {
		s.effects.Notify(&models.Notification{
			UserID:  task.OwnerID,
			Type:    models.NotificationTaskUpdated,
			Title:   "Task updated",
			Message: fmt.Sprintf("%s updated the task %q", actor.DisplayName, task.Title),
			TaskID:  &task.ID,
			TeamID:  task.TeamID,
		})
	}

	return updated, nil
}

// Delete removes a task and records the deletion in the global activity
// log.
func (s *TaskService) Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	allowed, err := s.authorizer.CanPerformTask(ctx, actor, task, authz.ActionDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.effects.LogActivity(&models.ActivityEntry{
		UserID:  actor.ID,
		Action:  models.ActivityTaskDeleted,
		Details: fmt.Sprintf("Deleted task %q", task.Title),
		TaskID:  &task.ID,
		TeamID:  task.TeamID,
	})

	return nil
}

// List returns the actor's tasks. A storage failure degrades to an empty
// list so the caller's view still renders.
func (s *TaskService) List(ctx context.Context, actor *models.User, filter string) ([]models.Task, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	tasks, err := s.taskRepo.FindForUser(ctx, actor.ID, filter)
	if err != nil {
		log.Printf("Failed to list tasks for user %s: %v", actor.ID.Hex(), err)
		return []models.Task{}, nil
	}
	return tasks, nil
}

// Watch streams change events for the actor's owned tasks.
func (s *TaskService) Watch(ctx context.Context, actor *models.User) (<-chan models.TaskChange, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.taskRepo.Watch(ctx, actor.ID)
}

// uploadAll validates and uploads files concurrently, preserving order.
// Each failure turns into a warning instead of aborting.
func (s *TaskService) uploadAll(ctx context.Context, files []storage.Upload) ([]models.Attachment, []string) {
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]*models.Attachment, len(files))
	warns := make([]string, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		if err := storage.Validate(file, s.maxUpload); err != nil {
			warns[i] = fmt.Sprintf("%s: %v", file.Name, err)
			continue
		}

		wg.Add(1)
		go func(i int, file storage.Upload) {
			defer wg.Done()
			att, err := s.uploader.Upload(ctx, file, "tasks")
			if err != nil {
				log.Printf("Upload of %s failed: %v", file.Name, err)
				warns[i] = fmt.Sprintf("%s: %v", file.Name, err)
				return
			}
			results[i] = att
		}(i, file)
	}
	wg.Wait()

	var attachments []models.Attachment
	var warnings []string
	for i := range files {
		if results[i] != nil {
			attachments = append(attachments, *results[i])
		}
		if warns[i] != "" {
			warnings = append(warnings, warns[i])
		}
	}
	return attachments, warnings
}

// bumpStat increments a stat counter and re-runs the promotion check.
// Failures are logged and swallowed; stats never fail the main operation.
func (s *TaskService) bumpStat(ctx context.Context, userID primitive.ObjectID, stat string) {
	updated, err := s.userRepo.IncrementStat(ctx, userID, stat, 1)
	if err != nil {
		log.Printf("Failed to increment %s for user %s: %v", stat, userID.Hex(), err)
		return
	}

	if _, _, err := s.promoter.Check(ctx, updated); err != nil {
		log.Printf("Promotion check failed for user %s: %v", userID.Hex(), err)
	}
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: bad assignee id %q", apperrors.ErrInvalidTaskData, h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
